package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Filters ─────────────────────────────────────────────────────────────────

type FacturaFilter struct {
	PageFilter
	Estado    string     `form:"estado"`
	ReservaID *uuid.UUID `form:"reserva_id"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type EmpresaRequest struct {
	RazonSocial        string  `json:"razon_social"        validate:"required,min=2"`
	RUC                string  `json:"ruc"                 validate:"required,min=6"`
	Direccion          *string `json:"direccion"`
	Telefono           *string `json:"telefono"`
	Email              *string `json:"email"               validate:"omitempty,email"`
	ActividadEconomica *string `json:"actividad_economica"`
}

type EstablecimientoRequest struct {
	Codigo    string  `json:"codigo"    validate:"required,len=3,numeric"`
	Nombre    string  `json:"nombre"    validate:"required,min=2"`
	Direccion *string `json:"direccion"`
}

type PuntoExpedicionRequest struct {
	EstablecimientoID string  `json:"establecimiento_id" validate:"required,uuid"`
	Codigo            string  `json:"codigo"             validate:"required,len=3,numeric"`
	Descripcion       *string `json:"descripcion"`
}

type TimbradoRequest struct {
	Numero      string `json:"numero"       validate:"required,min=6"`
	FechaInicio string `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	FechaFin    string `json:"fecha_fin"    validate:"required,datetime=2006-01-02"`
}

// ConfiguracionFacturaRequest sets the active emission context: which
// establecimiento, punto and timbrado real invoices copy.
type ConfiguracionFacturaRequest struct {
	Empresa           *EmpresaRequest `json:"empresa"`
	EstablecimientoID string          `json:"establecimiento_id"  validate:"required,uuid"`
	PuntoExpedicionID string          `json:"punto_expedicion_id" validate:"required,uuid"`
	TimbradoID        string          `json:"timbrado_id"         validate:"required,uuid"`
	CondicionVenta    *string         `json:"condicion_venta"     validate:"omitempty,oneof=contado credito"`
}

type DetalleFacturaRequest struct {
	Descripcion    string          `json:"descripcion"     validate:"required,min=2"`
	Cantidad       decimal.Decimal `json:"cantidad"        validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	TasaIVA        int             `json:"tasa_iva"        validate:"oneof=0 5 10"`
}

type EmitirFacturaRequest struct {
	ReservaID      *string                 `json:"reserva_id"      validate:"omitempty,uuid"`
	ComprobanteID  *string                 `json:"comprobante_id"  validate:"omitempty,uuid"`
	ReceptorID     string                  `json:"receptor_id"     validate:"required,uuid"`
	CondicionVenta string                  `json:"condicion_venta" validate:"required,oneof=contado credito"`
	MonedaID       *string                 `json:"moneda_id"       validate:"omitempty,uuid"`
	Detalles       []DetalleFacturaRequest `json:"detalles"        validate:"required,min=1,dive"`
}

type NotaCreditoRequest struct {
	FacturaID               string          `json:"factura_id"    validate:"required,uuid"`
	Motivo                  string          `json:"motivo"        validate:"required,min=3"`
	TotalGeneral            decimal.Decimal `json:"total_general" validate:"required"`
	DevolucionComprobanteID *string         `json:"devolucion_comprobante_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EmpresaResponse struct {
	ID                 string  `json:"id"`
	RazonSocial        string  `json:"razon_social"`
	RUC                string  `json:"ruc"`
	Direccion          *string `json:"direccion"`
	Telefono           *string `json:"telefono"`
	Email              *string `json:"email"`
	ActividadEconomica *string `json:"actividad_economica"`
}

type EstablecimientoResponse struct {
	ID        string  `json:"id"`
	Codigo    string  `json:"codigo"`
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion"`
	Activo    bool    `json:"activo"`
}

type PuntoExpedicionResponse struct {
	ID                string  `json:"id"`
	EstablecimientoID string  `json:"establecimiento_id"`
	Codigo            string  `json:"codigo"`
	Descripcion       *string `json:"descripcion"`
	Activo            bool    `json:"activo"`
}

type TimbradoResponse struct {
	ID          string `json:"id"`
	Numero      string `json:"numero"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
	Vigente     bool   `json:"vigente"`
}

type SubtipoImpuestoResponse struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	Porcentaje int    `json:"porcentaje"`
}

type TipoImpuestoResponse struct {
	ID          string                    `json:"id"`
	Nombre      string                    `json:"nombre"`
	Descripcion *string                   `json:"descripcion,omitempty"`
	Subtipos    []SubtipoImpuestoResponse `json:"subtipos"`
}

type ConfiguracionFacturaResponse struct {
	Empresa         *EmpresaResponse         `json:"empresa"`
	Establecimiento *EstablecimientoResponse `json:"establecimiento"`
	PuntoExpedicion *PuntoExpedicionResponse `json:"punto_expedicion"`
	Timbrado        *TimbradoResponse        `json:"timbrado"`
	CondicionVenta  *string                  `json:"condicion_venta"`
}

type DetalleFacturaResponse struct {
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	TasaIVA        int             `json:"tasa_iva"`
	MontoIVA       decimal.Decimal `json:"monto_iva"`
	MontoTotal     decimal.Decimal `json:"monto_total"`
}

type FacturaResponse struct {
	ID             string                   `json:"id"`
	Numero         *string                  `json:"numero"`
	CDC            *string                  `json:"cdc"`
	Estado         string                   `json:"estado"`
	Receptor       *string                  `json:"receptor"`
	FechaEmision   *string                  `json:"fecha_emision"`
	CondicionVenta *string                  `json:"condicion_venta"`
	TotalGravado10 decimal.Decimal          `json:"total_gravado_10"`
	TotalGravado5  decimal.Decimal          `json:"total_gravado_5"`
	TotalExentas   decimal.Decimal          `json:"total_exentas"`
	TotalIVA       decimal.Decimal          `json:"total_iva"`
	TotalGeneral   decimal.Decimal          `json:"total_general"`
	ContenidoQR    *string                  `json:"contenido_qr"`
	PDFPath        *string                  `json:"pdf_path"`
	Detalles       []DetalleFacturaResponse `json:"detalles,omitempty"`
	CreatedAt      string                   `json:"created_at"`
}

type NotaCreditoResponse struct {
	ID           string          `json:"id"`
	Numero       string          `json:"numero"`
	FacturaID    string          `json:"factura_id"`
	Motivo       string          `json:"motivo"`
	TotalGeneral decimal.Decimal `json:"total_general"`
	Estado       string          `json:"estado"`
	FechaEmision string          `json:"fecha_emision"`
}
