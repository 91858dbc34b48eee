package repository

import (
	"context"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoucherRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Voucher) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error)
	FindByPasajero(ctx context.Context, pasajeroID uuid.UUID) (*model.Voucher, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Voucher, error)
	ListByReserva(ctx context.Context, reservaID uuid.UUID) ([]model.Voucher, error)
	Update(ctx context.Context, v *model.Voucher) error
}

type voucherRepo struct{ db *gorm.DB }

func NewVoucherRepository(db *gorm.DB) VoucherRepository { return &voucherRepo{db: db} }

func (r *voucherRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Voucher) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *voucherRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	var v model.Voucher
	err := r.db.WithContext(ctx).
		Preload("Reserva.Salida").
		Preload("Reserva.Paquete").
		Preload("Pasajero.Persona").
		First(&v, id).Error
	return &v, err
}

func (r *voucherRepo) FindByPasajero(ctx context.Context, pasajeroID uuid.UUID) (*model.Voucher, error) {
	var v model.Voucher
	err := r.db.WithContext(ctx).Where("pasajero_id = ?", pasajeroID).First(&v).Error
	return &v, err
}

func (r *voucherRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Voucher, error) {
	var v model.Voucher
	err := r.db.WithContext(ctx).
		Preload("Pasajero.Persona").
		Where("codigo = ?", codigo).
		First(&v).Error
	return &v, err
}

func (r *voucherRepo) ListByReserva(ctx context.Context, reservaID uuid.UUID) ([]model.Voucher, error) {
	var vouchers []model.Voucher
	err := r.db.WithContext(ctx).
		Where("reserva_id = ?", reservaID).
		Preload("Pasajero.Persona").
		Find(&vouchers).Error
	return vouchers, err
}

func (r *voucherRepo) Update(ctx context.Context, v *model.Voucher) error {
	return r.db.WithContext(ctx).Save(v).Error
}
