package repository

import (
	"context"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, r *model.Reserva) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Reserva, error)
	Update(ctx context.Context, tx *gorm.DB, r *model.Reserva) error
	List(ctx context.Context, filter dto.ReservaFilter) ([]model.Reserva, int64, error)

	CreatePasajero(ctx context.Context, tx *gorm.DB, p *model.Pasajero) error
	FindPasajeroByID(ctx context.Context, id uuid.UUID) (*model.Pasajero, error)
	UpdatePasajero(ctx context.Context, tx *gorm.DB, p *model.Pasajero) error
	ListPasajeros(ctx context.Context, reservaID uuid.UUID) ([]model.Pasajero, error)

	DB() *gorm.DB
}

type reservaRepo struct{ db *gorm.DB }

func NewReservaRepository(db *gorm.DB) ReservaRepository { return &reservaRepo{db: db} }

func (r *reservaRepo) DB() *gorm.DB { return r.db }

func (r *reservaRepo) Create(ctx context.Context, tx *gorm.DB, rsv *model.Reserva) error {
	return tx.WithContext(ctx).Create(rsv).Error
}

func (r *reservaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error) {
	var rsv model.Reserva
	err := r.db.WithContext(ctx).
		Preload("Titular").
		Preload("Paquete").
		Preload("Salida").
		Preload("Salida.Moneda").
		Preload("Habitacion").
		Preload("Pasajeros.Persona").
		First(&rsv, id).Error
	return &rsv, err
}

func (r *reservaRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Reserva, error) {
	var rsv model.Reserva
	err := r.db.WithContext(ctx).
		Preload("Pasajeros.Persona").
		Where("codigo = ?", codigo).
		First(&rsv).Error
	return &rsv, err
}

func (r *reservaRepo) Update(ctx context.Context, tx *gorm.DB, rsv *model.Reserva) error {
	return tx.WithContext(ctx).Save(rsv).Error
}

func (r *reservaRepo) List(ctx context.Context, filter dto.ReservaFilter) ([]model.Reserva, int64, error) {
	var reservas []model.Reserva
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Reserva{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.SalidaID != nil {
		q = q.Where("salida_id = ?", *filter.SalidaID)
	}
	if filter.TitularID != nil {
		q = q.Where("titular_id = ?", *filter.TitularID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Titular").Preload("Paquete").Preload("Salida").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&reservas).Error
	return reservas, total, err
}

func (r *reservaRepo) CreatePasajero(ctx context.Context, tx *gorm.DB, p *model.Pasajero) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *reservaRepo) FindPasajeroByID(ctx context.Context, id uuid.UUID) (*model.Pasajero, error) {
	var p model.Pasajero
	err := r.db.WithContext(ctx).Preload("Persona").First(&p, id).Error
	return &p, err
}

func (r *reservaRepo) UpdatePasajero(ctx context.Context, tx *gorm.DB, p *model.Pasajero) error {
	return tx.WithContext(ctx).Save(p).Error
}

func (r *reservaRepo) ListPasajeros(ctx context.Context, reservaID uuid.UUID) ([]model.Pasajero, error) {
	var pasajeros []model.Pasajero
	err := r.db.WithContext(ctx).
		Where("reserva_id = ?", reservaID).
		Preload("Persona").
		Order("created_at ASC").
		Find(&pasajeros).Error
	return pasajeros, err
}
