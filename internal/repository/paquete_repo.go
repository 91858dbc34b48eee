package repository

import (
	"context"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaqueteRepository interface {
	Create(ctx context.Context, p *model.Paquete) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Paquete, error)
	Update(ctx context.Context, p *model.Paquete) error
	List(ctx context.Context, filter dto.PageFilter) ([]model.Paquete, int64, error)

	CreateSalida(ctx context.Context, s *model.Salida) error
	FindSalidaByID(ctx context.Context, id uuid.UUID) (*model.Salida, error)
	FindSalidaForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Salida, error)
	UpdateSalida(ctx context.Context, tx *gorm.DB, s *model.Salida) error
	ListSalidas(ctx context.Context, paqueteID uuid.UUID) ([]model.Salida, error)

	FindHabitacionByID(ctx context.Context, id uuid.UUID) (*model.Habitacion, error)
	ListHabitaciones(ctx context.Context) ([]model.Habitacion, error)
}

type paqueteRepo struct{ db *gorm.DB }

func NewPaqueteRepository(db *gorm.DB) PaqueteRepository { return &paqueteRepo{db: db} }

func (r *paqueteRepo) Create(ctx context.Context, p *model.Paquete) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paqueteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Paquete, error) {
	var p model.Paquete
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *paqueteRepo) Update(ctx context.Context, p *model.Paquete) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *paqueteRepo) List(ctx context.Context, filter dto.PageFilter) ([]model.Paquete, int64, error) {
	var paquetes []model.Paquete
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Paquete{}).Where("activo = true")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("nombre ASC").Offset(offset).Limit(filter.Limit).Find(&paquetes).Error
	return paquetes, total, err
}

func (r *paqueteRepo) CreateSalida(ctx context.Context, s *model.Salida) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *paqueteRepo) FindSalidaByID(ctx context.Context, id uuid.UUID) (*model.Salida, error) {
	var s model.Salida
	err := r.db.WithContext(ctx).Preload("Paquete").Preload("Moneda").First(&s, id).Error
	return &s, err
}

// FindSalidaForUpdate locks the salida row so concurrent bookings cannot
// oversell the remaining cupo.
func (r *paqueteRepo) FindSalidaForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Salida, error) {
	var s model.Salida
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error
	return &s, err
}

func (r *paqueteRepo) UpdateSalida(ctx context.Context, tx *gorm.DB, s *model.Salida) error {
	return tx.WithContext(ctx).Save(s).Error
}

func (r *paqueteRepo) ListSalidas(ctx context.Context, paqueteID uuid.UUID) ([]model.Salida, error) {
	var salidas []model.Salida
	err := r.db.WithContext(ctx).
		Where("paquete_id = ? AND activo = true", paqueteID).
		Order("fecha_salida ASC").
		Find(&salidas).Error
	return salidas, err
}

func (r *paqueteRepo) FindHabitacionByID(ctx context.Context, id uuid.UUID) (*model.Habitacion, error) {
	var h model.Habitacion
	err := r.db.WithContext(ctx).First(&h, id).Error
	return &h, err
}

func (r *paqueteRepo) ListHabitaciones(ctx context.Context) ([]model.Habitacion, error) {
	var habitaciones []model.Habitacion
	err := r.db.WithContext(ctx).Where("activo = true").Order("capacidad ASC").Find(&habitaciones).Error
	return habitaciones, err
}
