package repository

import (
	"context"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MonedaRepository interface {
	Create(ctx context.Context, m *model.Moneda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Moneda, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Moneda, error)
	List(ctx context.Context) ([]model.Moneda, error)

	CreateCotizacion(ctx context.Context, c *model.CotizacionMoneda) error
	// FindCotizacionVigente returns the newest rate with fecha <= the given
	// date; gorm.ErrRecordNotFound when no rate covers it.
	FindCotizacionVigente(ctx context.Context, monedaID uuid.UUID, fecha time.Time) (*model.CotizacionMoneda, error)
	ListCotizaciones(ctx context.Context, monedaID uuid.UUID, desde, hasta time.Time) ([]model.CotizacionMoneda, error)
}

type monedaRepo struct{ db *gorm.DB }

func NewMonedaRepository(db *gorm.DB) MonedaRepository { return &monedaRepo{db: db} }

func (r *monedaRepo) Create(ctx context.Context, m *model.Moneda) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *monedaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Moneda, error) {
	var m model.Moneda
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *monedaRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Moneda, error) {
	var m model.Moneda
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&m).Error
	return &m, err
}

func (r *monedaRepo) List(ctx context.Context) ([]model.Moneda, error) {
	var monedas []model.Moneda
	err := r.db.WithContext(ctx).Where("activo = true").Order("codigo ASC").Find(&monedas).Error
	return monedas, err
}

func (r *monedaRepo) CreateCotizacion(ctx context.Context, c *model.CotizacionMoneda) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *monedaRepo) FindCotizacionVigente(ctx context.Context, monedaID uuid.UUID, fecha time.Time) (*model.CotizacionMoneda, error) {
	var c model.CotizacionMoneda
	err := r.db.WithContext(ctx).
		Where("moneda_id = ? AND fecha <= ?", monedaID, fecha).
		Order("fecha DESC").
		First(&c).Error
	return &c, err
}

func (r *monedaRepo) ListCotizaciones(ctx context.Context, monedaID uuid.UUID, desde, hasta time.Time) ([]model.CotizacionMoneda, error) {
	var cotizaciones []model.CotizacionMoneda
	err := r.db.WithContext(ctx).
		Where("moneda_id = ? AND fecha BETWEEN ? AND ?", monedaID, desde, hasta).
		Order("fecha DESC").
		Find(&cotizaciones).Error
	return cotizaciones, err
}
