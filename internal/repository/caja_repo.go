package repository

import (
	"context"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Caja, error)
	List(ctx context.Context, filter dto.CajaFilter) ([]model.Caja, int64, error)
	Update(ctx context.Context, tx *gorm.DB, c *model.Caja) error

	CreateApertura(ctx context.Context, tx *gorm.DB, a *model.AperturaCaja) error
	FindAperturaByID(ctx context.Context, id uuid.UUID) (*model.AperturaCaja, error)
	FindAperturaAbiertaPorCaja(ctx context.Context, cajaID uuid.UUID) (*model.AperturaCaja, error)
	FindAperturaAbiertaPorEmpleado(ctx context.Context, empleadoID uuid.UUID) (*model.AperturaCaja, error)
	UpdateApertura(ctx context.Context, tx *gorm.DB, a *model.AperturaCaja) error
	ListAperturas(ctx context.Context, filter dto.AperturaFilter) ([]model.AperturaCaja, int64, error)

	CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error
	FindMovimientoByID(ctx context.Context, id uuid.UUID) (*model.MovimientoCaja, error)
	UpdateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, aperturaID uuid.UUID) ([]model.MovimientoCaja, error)
	ListMovimientosPaginado(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoCaja, int64, error)
	FindMovimientosPorComprobante(ctx context.Context, comprobanteID uuid.UUID) ([]model.MovimientoCaja, error)

	CreateCierre(ctx context.Context, tx *gorm.DB, c *model.CierreCaja) error
	FindCierreByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error)
	FindCierreByApertura(ctx context.Context, aperturaID uuid.UUID) (*model.CierreCaja, error)
	UpdateCierre(ctx context.Context, c *model.CierreCaja) error
	ListCierres(ctx context.Context, filter dto.PageFilter) ([]model.CierreCaja, int64, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Preload("PuntoExpedicion.Establecimiento").First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) List(ctx context.Context, filter dto.CajaFilter) ([]model.Caja, int64, error) {
	var cajas []model.Caja
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Caja{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.SoloActivas {
		q = q.Where("activo = true")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("PuntoExpedicion").
		Order("numero ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&cajas).Error
	return cajas, total, err
}

func (r *cajaRepo) Update(ctx context.Context, tx *gorm.DB, c *model.Caja) error {
	return tx.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) CreateApertura(ctx context.Context, tx *gorm.DB, a *model.AperturaCaja) error {
	return tx.WithContext(ctx).Create(a).Error
}

func (r *cajaRepo) FindAperturaByID(ctx context.Context, id uuid.UUID) (*model.AperturaCaja, error) {
	var a model.AperturaCaja
	err := r.db.WithContext(ctx).Preload("Caja").Preload("Responsable.Persona").First(&a, id).Error
	return &a, err
}

func (r *cajaRepo) FindAperturaAbiertaPorCaja(ctx context.Context, cajaID uuid.UUID) (*model.AperturaCaja, error) {
	var a model.AperturaCaja
	err := r.db.WithContext(ctx).
		Where("caja_id = ? AND esta_abierta = true", cajaID).
		First(&a).Error
	return &a, err
}

func (r *cajaRepo) FindAperturaAbiertaPorEmpleado(ctx context.Context, empleadoID uuid.UUID) (*model.AperturaCaja, error) {
	var a model.AperturaCaja
	err := r.db.WithContext(ctx).
		Where("responsable_id = ? AND esta_abierta = true", empleadoID).
		Preload("Caja").
		First(&a).Error
	return &a, err
}

func (r *cajaRepo) UpdateApertura(ctx context.Context, tx *gorm.DB, a *model.AperturaCaja) error {
	return tx.WithContext(ctx).Save(a).Error
}

func (r *cajaRepo) ListAperturas(ctx context.Context, filter dto.AperturaFilter) ([]model.AperturaCaja, int64, error) {
	var aperturas []model.AperturaCaja
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.AperturaCaja{})
	if filter.CajaID != nil {
		q = q.Where("caja_id = ?", *filter.CajaID)
	}
	if filter.SoloAbiertas {
		q = q.Where("esta_abierta = true")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Caja").Preload("Responsable.Persona").
		Order("fecha_apertura DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&aperturas).Error
	return aperturas, total, err
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) FindMovimientoByID(ctx context.Context, id uuid.UUID) (*model.MovimientoCaja, error) {
	var m model.MovimientoCaja
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *cajaRepo) UpdateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.WithContext(ctx).Save(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, aperturaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Where("apertura_id = ?", aperturaID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) ListMovimientosPaginado(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoCaja, int64, error) {
	var movs []model.MovimientoCaja
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.MovimientoCaja{})
	if filter.AperturaID != nil {
		q = q.Where("apertura_id = ?", *filter.AperturaID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Concepto != "" {
		q = q.Where("concepto = ?", filter.Concepto)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&movs).Error
	return movs, total, err
}

func (r *cajaRepo) FindMovimientosPorComprobante(ctx context.Context, comprobanteID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Where("comprobante_id = ?", comprobanteID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) CreateCierre(ctx context.Context, tx *gorm.DB, c *model.CierreCaja) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindCierreByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	var c model.CierreCaja
	err := r.db.WithContext(ctx).Preload("Apertura.Caja").First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) FindCierreByApertura(ctx context.Context, aperturaID uuid.UUID) (*model.CierreCaja, error) {
	var c model.CierreCaja
	err := r.db.WithContext(ctx).Where("apertura_id = ?", aperturaID).First(&c).Error
	return &c, err
}

func (r *cajaRepo) UpdateCierre(ctx context.Context, c *model.CierreCaja) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) ListCierres(ctx context.Context, filter dto.PageFilter) ([]model.CierreCaja, int64, error) {
	var cierres []model.CierreCaja
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.CierreCaja{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Apertura.Caja").
		Order("fecha_cierre DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&cierres).Error
	return cierres, total, err
}
