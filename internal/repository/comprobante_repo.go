package repository

import (
	"context"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComprobanteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.ComprobantePago) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ComprobantePago, error)
	Update(ctx context.Context, tx *gorm.DB, c *model.ComprobantePago) error
	ListByReserva(ctx context.Context, reservaID uuid.UUID) ([]model.ComprobantePago, error)
	List(ctx context.Context, filter dto.ComprobanteFilter) ([]model.ComprobantePago, int64, error)
	ListDistribucionesPorPasajero(ctx context.Context, pasajeroID uuid.UUID) ([]model.ComprobantePagoDistribucion, error)
	DB() *gorm.DB
}

type comprobanteRepo struct{ db *gorm.DB }

func NewComprobanteRepository(db *gorm.DB) ComprobanteRepository {
	return &comprobanteRepo{db: db}
}

func (r *comprobanteRepo) DB() *gorm.DB { return r.db }

func (r *comprobanteRepo) Create(ctx context.Context, tx *gorm.DB, c *model.ComprobantePago) error {
	// Distribuciones travel with the comprobante (gorm association insert).
	return tx.WithContext(ctx).Create(c).Error
}

func (r *comprobanteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ComprobantePago, error) {
	var c model.ComprobantePago
	err := r.db.WithContext(ctx).
		Preload("Distribuciones.Pasajero.Persona").
		Preload("Reserva.Titular").
		Preload("Empleado.Persona").
		First(&c, id).Error
	return &c, err
}

func (r *comprobanteRepo) Update(ctx context.Context, tx *gorm.DB, c *model.ComprobantePago) error {
	return tx.WithContext(ctx).Save(c).Error
}

func (r *comprobanteRepo) ListByReserva(ctx context.Context, reservaID uuid.UUID) ([]model.ComprobantePago, error) {
	var comprobantes []model.ComprobantePago
	err := r.db.WithContext(ctx).
		Where("reserva_id = ?", reservaID).
		Preload("Distribuciones").
		Order("created_at ASC").
		Find(&comprobantes).Error
	return comprobantes, err
}

func (r *comprobanteRepo) List(ctx context.Context, filter dto.ComprobanteFilter) ([]model.ComprobantePago, int64, error) {
	var comprobantes []model.ComprobantePago
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.ComprobantePago{})
	if filter.ReservaID != nil {
		q = q.Where("reserva_id = ?", *filter.ReservaID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.SoloActivos {
		q = q.Where("activo = true")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Distribuciones").Preload("Reserva").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&comprobantes).Error
	return comprobantes, total, err
}

func (r *comprobanteRepo) ListDistribucionesPorPasajero(ctx context.Context, pasajeroID uuid.UUID) ([]model.ComprobantePagoDistribucion, error) {
	var dists []model.ComprobantePagoDistribucion
	err := r.db.WithContext(ctx).
		Joins("JOIN comprobante_pagos ON comprobante_pagos.id = comprobante_pago_distribucions.comprobante_id").
		Where("comprobante_pago_distribucions.pasajero_id = ? AND comprobante_pagos.activo = true", pasajeroID).
		Find(&dists).Error
	return dists, err
}
