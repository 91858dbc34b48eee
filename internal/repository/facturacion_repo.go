package repository

import (
	"context"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacturacionRepository interface {
	FindEmpresa(ctx context.Context) (*model.Empresa, error)
	SaveEmpresa(ctx context.Context, e *model.Empresa) error

	CreateEstablecimiento(ctx context.Context, e *model.Establecimiento) error
	ListEstablecimientos(ctx context.Context) ([]model.Establecimiento, error)
	FindEstablecimientoByID(ctx context.Context, id uuid.UUID) (*model.Establecimiento, error)

	CreatePuntoExpedicion(ctx context.Context, p *model.PuntoExpedicion) error
	FindPuntoExpedicionByID(ctx context.Context, id uuid.UUID) (*model.PuntoExpedicion, error)
	ListPuntosExpedicion(ctx context.Context, establecimientoID uuid.UUID) ([]model.PuntoExpedicion, error)

	CreateTimbrado(ctx context.Context, t *model.Timbrado) error
	FindTimbradoVigente(ctx context.Context, fecha time.Time) (*model.Timbrado, error)
	ListTimbrados(ctx context.Context) ([]model.Timbrado, error)

	ListTiposImpuesto(ctx context.Context) ([]model.TipoImpuesto, error)

	CreateFactura(ctx context.Context, tx *gorm.DB, f *model.FacturaElectronica) error
	FindFacturaByID(ctx context.Context, id uuid.UUID) (*model.FacturaElectronica, error)
	FindConfiguracion(ctx context.Context) (*model.FacturaElectronica, error)
	SaveConfiguracion(ctx context.Context, f *model.FacturaElectronica) error
	UpdateFactura(ctx context.Context, f *model.FacturaElectronica) error
	ListFacturas(ctx context.Context, filter dto.FacturaFilter) ([]model.FacturaElectronica, int64, error)
	// ListFacturasParaReintento feeds the retry cron: failed invoices whose
	// next_retry_at has passed.
	ListFacturasParaReintento(ctx context.Context, ahora time.Time, limite int) ([]model.FacturaElectronica, error)

	CreateNotaCredito(ctx context.Context, tx *gorm.DB, nc *model.NotaCreditoElectronica) error
	UpdateNotaCredito(ctx context.Context, nc *model.NotaCreditoElectronica) error
	FindNotaCreditoByID(ctx context.Context, id uuid.UUID) (*model.NotaCreditoElectronica, error)
	ListNotasCreditoPorFactura(ctx context.Context, facturaID uuid.UUID) ([]model.NotaCreditoElectronica, error)
	ListNotasCreditoPorReserva(ctx context.Context, reservaID uuid.UUID) ([]model.NotaCreditoElectronica, error)

	DB() *gorm.DB
}

type facturacionRepo struct{ db *gorm.DB }

func NewFacturacionRepository(db *gorm.DB) FacturacionRepository { return &facturacionRepo{db: db} }

func (r *facturacionRepo) DB() *gorm.DB { return r.db }

func (r *facturacionRepo) FindEmpresa(ctx context.Context) (*model.Empresa, error) {
	var e model.Empresa
	err := r.db.WithContext(ctx).First(&e).Error
	return &e, err
}

func (r *facturacionRepo) SaveEmpresa(ctx context.Context, e *model.Empresa) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *facturacionRepo) CreateEstablecimiento(ctx context.Context, e *model.Establecimiento) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *facturacionRepo) ListEstablecimientos(ctx context.Context) ([]model.Establecimiento, error) {
	var establecimientos []model.Establecimiento
	err := r.db.WithContext(ctx).Where("activo = true").Order("codigo ASC").Find(&establecimientos).Error
	return establecimientos, err
}

func (r *facturacionRepo) FindEstablecimientoByID(ctx context.Context, id uuid.UUID) (*model.Establecimiento, error) {
	var e model.Establecimiento
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *facturacionRepo) CreatePuntoExpedicion(ctx context.Context, p *model.PuntoExpedicion) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *facturacionRepo) FindPuntoExpedicionByID(ctx context.Context, id uuid.UUID) (*model.PuntoExpedicion, error) {
	var p model.PuntoExpedicion
	err := r.db.WithContext(ctx).Preload("Establecimiento").First(&p, id).Error
	return &p, err
}

func (r *facturacionRepo) ListPuntosExpedicion(ctx context.Context, establecimientoID uuid.UUID) ([]model.PuntoExpedicion, error) {
	var puntos []model.PuntoExpedicion
	err := r.db.WithContext(ctx).
		Where("establecimiento_id = ? AND activo = true", establecimientoID).
		Order("codigo ASC").
		Find(&puntos).Error
	return puntos, err
}

func (r *facturacionRepo) CreateTimbrado(ctx context.Context, t *model.Timbrado) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *facturacionRepo) FindTimbradoVigente(ctx context.Context, fecha time.Time) (*model.Timbrado, error) {
	var t model.Timbrado
	err := r.db.WithContext(ctx).
		Where("activo = true AND fecha_inicio <= ? AND fecha_fin >= ?", fecha, fecha).
		Order("fecha_fin DESC").
		First(&t).Error
	return &t, err
}

func (r *facturacionRepo) ListTimbrados(ctx context.Context) ([]model.Timbrado, error) {
	var timbrados []model.Timbrado
	err := r.db.WithContext(ctx).Order("fecha_inicio DESC").Find(&timbrados).Error
	return timbrados, err
}

func (r *facturacionRepo) ListTiposImpuesto(ctx context.Context) ([]model.TipoImpuesto, error) {
	var tipos []model.TipoImpuesto
	err := r.db.WithContext(ctx).Preload("Subtipos").Find(&tipos).Error
	return tipos, err
}

func (r *facturacionRepo) CreateFactura(ctx context.Context, tx *gorm.DB, f *model.FacturaElectronica) error {
	return tx.WithContext(ctx).Create(f).Error
}

func (r *facturacionRepo) FindFacturaByID(ctx context.Context, id uuid.UUID) (*model.FacturaElectronica, error) {
	var f model.FacturaElectronica
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Preload("Empresa").
		Preload("Establecimiento").
		Preload("PuntoExpedicion").
		Preload("Timbrado").
		Preload("Receptor").
		First(&f, id).Error
	return &f, err
}

func (r *facturacionRepo) FindConfiguracion(ctx context.Context) (*model.FacturaElectronica, error) {
	var f model.FacturaElectronica
	err := r.db.WithContext(ctx).
		Where("es_configuracion = true").
		Preload("Empresa").
		Preload("Establecimiento").
		Preload("PuntoExpedicion").
		Preload("Timbrado").
		First(&f).Error
	return &f, err
}

func (r *facturacionRepo) SaveConfiguracion(ctx context.Context, f *model.FacturaElectronica) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *facturacionRepo) UpdateFactura(ctx context.Context, f *model.FacturaElectronica) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *facturacionRepo) ListFacturas(ctx context.Context, filter dto.FacturaFilter) ([]model.FacturaElectronica, int64, error) {
	var facturas []model.FacturaElectronica
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.FacturaElectronica{}).Where("es_configuracion = false")
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ReservaID != nil {
		q = q.Where("reserva_id = ?", *filter.ReservaID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Receptor").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&facturas).Error
	return facturas, total, err
}

func (r *facturacionRepo) ListFacturasParaReintento(ctx context.Context, ahora time.Time, limite int) ([]model.FacturaElectronica, error) {
	var facturas []model.FacturaElectronica
	err := r.db.WithContext(ctx).
		Where("es_configuracion = false AND estado = 'error' AND next_retry_at IS NOT NULL AND next_retry_at <= ?", ahora).
		Order("next_retry_at ASC").
		Limit(limite).
		Find(&facturas).Error
	return facturas, err
}

func (r *facturacionRepo) CreateNotaCredito(ctx context.Context, tx *gorm.DB, nc *model.NotaCreditoElectronica) error {
	return tx.WithContext(ctx).Create(nc).Error
}

func (r *facturacionRepo) UpdateNotaCredito(ctx context.Context, nc *model.NotaCreditoElectronica) error {
	return r.db.WithContext(ctx).Save(nc).Error
}

func (r *facturacionRepo) FindNotaCreditoByID(ctx context.Context, id uuid.UUID) (*model.NotaCreditoElectronica, error) {
	var nc model.NotaCreditoElectronica
	err := r.db.WithContext(ctx).Preload("Factura").First(&nc, id).Error
	return &nc, err
}

func (r *facturacionRepo) ListNotasCreditoPorFactura(ctx context.Context, facturaID uuid.UUID) ([]model.NotaCreditoElectronica, error) {
	var notas []model.NotaCreditoElectronica
	err := r.db.WithContext(ctx).Where("factura_id = ?", facturaID).Order("created_at ASC").Find(&notas).Error
	return notas, err
}

func (r *facturacionRepo) ListNotasCreditoPorReserva(ctx context.Context, reservaID uuid.UUID) ([]model.NotaCreditoElectronica, error) {
	var notas []model.NotaCreditoElectronica
	err := r.db.WithContext(ctx).
		Joins("JOIN factura_electronicas ON factura_electronicas.id = nota_credito_electronicas.factura_id").
		Where("factura_electronicas.reserva_id = ?", reservaID).
		Find(&notas).Error
	return notas, err
}
