package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Filters ─────────────────────────────────────────────────────────────────

type ReservaFilter struct {
	PageFilter
	Estado    string     `form:"estado"`
	SalidaID  *uuid.UUID `form:"salida_id"`
	TitularID *uuid.UUID `form:"titular_id"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearReservaRequest struct {
	TitularID            string           `json:"titular_id"            validate:"required,uuid"`
	PaqueteID            string           `json:"paquete_id"            validate:"required,uuid"`
	SalidaID             string           `json:"salida_id"             validate:"required,uuid"`
	HabitacionID         *string          `json:"habitacion_id"         validate:"omitempty,uuid"`
	CantidadPasajeros    int              `json:"cantidad_pasajeros"    validate:"required,min=1"`
	PrecioUnitario       *decimal.Decimal `json:"precio_unitario"`
	ModalidadFacturacion string           `json:"modalidad_facturacion" validate:"required,oneof=global individual"`
	CondicionPago        string           `json:"condicion_pago"        validate:"required,oneof=contado credito"`
}

type AgregarPasajeroRequest struct {
	// PersonaID references an existing persona; when nil, the persona fields
	// below create one.
	PersonaID       *string `json:"persona_id"       validate:"omitempty,uuid"`
	Tipo            string  `json:"tipo"             validate:"omitempty,oneof=fisica juridica"`
	NumeroDocumento *string `json:"numero_documento"`
	Nombre          *string `json:"nombre"`
	Apellido        *string `json:"apellido"`
	EsTitular       bool    `json:"es_titular"`
}

type ActualizarPasajeroRequest struct {
	PersonaID      string           `json:"persona_id"      validate:"required,uuid"`
	PrecioAsignado *decimal.Decimal `json:"precio_asignado"`
}

type CancelarReservaRequest struct {
	// MotivoID: "1".."8"; "8" (otros) cuando se omite.
	MotivoID    *string `json:"motivo_id"   validate:"omitempty,oneof=1 2 3 4 5 6 7 8"`
	Observacion *string `json:"observacion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PasajeroResponse struct {
	ID                  string          `json:"id"`
	Persona             string          `json:"persona"`
	NumeroDocumento     string          `json:"numero_documento"`
	EsTitular           bool            `json:"es_titular"`
	PorAsignar          bool            `json:"por_asignar"`
	PrecioAsignado      decimal.Decimal `json:"precio_asignado"`
	MontoPagado         decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente      decimal.Decimal `json:"saldo_pendiente"`
	PorcentajePagado    decimal.Decimal `json:"porcentaje_pagado"`
	TieneSeniaPagada    bool            `json:"tiene_senia_pagada"`
	EstaTotalmentePagado bool           `json:"esta_totalmente_pagado"`
}

type ReservaResponse struct {
	ID                   string          `json:"id"`
	Codigo               string          `json:"codigo"`
	Estado               string          `json:"estado"`
	ModalidadFacturacion string          `json:"modalidad_facturacion"`
	CondicionPago        string          `json:"condicion_pago"`
	Titular              string          `json:"titular"`
	Paquete              string          `json:"paquete"`
	Destino              string          `json:"destino"`
	FechaSalida          string          `json:"fecha_salida"`
	CantidadPasajeros    int             `json:"cantidad_pasajeros"`
	PrecioUnitario       decimal.Decimal `json:"precio_unitario"`
	PrecioTotal          decimal.Decimal `json:"precio_total"`
	SeniaTotal           decimal.Decimal `json:"senia_total"`
	MontoPagado          decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente       decimal.Decimal `json:"saldo_pendiente"`
	DatosCompletos       bool            `json:"datos_completos"`
	PuedeConfirmarse     bool            `json:"puede_confirmarse"`
	EstaTotalmentePagada bool            `json:"esta_totalmente_pagada"`
	Pasajeros            []PasajeroResponse `json:"pasajeros,omitempty"`
	CreatedAt            string          `json:"created_at"`
}

// MontosCancelacionResponse breaks down what a cancellation refunds.
type MontosCancelacionResponse struct {
	SeniaPagada      decimal.Decimal `json:"senia_pagada"`
	PagosAdicionales decimal.Decimal `json:"pagos_adicionales"`
	Devoluciones     decimal.Decimal `json:"devoluciones"`
	MontoReembolsable decimal.Decimal `json:"monto_reembolsable"`
	// ReembolsoHabilitado: true solo con mas de 20 dias hasta la salida.
	// La seña no se reembolsa nunca.
	ReembolsoHabilitado bool `json:"reembolso_habilitado"`
	DiasHastaSalida     int  `json:"dias_hasta_salida"`
}

type VoucherResponse struct {
	ID          string  `json:"id"`
	Codigo      string  `json:"codigo"`
	ReservaID   string  `json:"reserva_id"`
	Pasajero    string  `json:"pasajero"`
	ContenidoQR string  `json:"contenido_qr"`
	PDFPath     *string `json:"pdf_path"`
	CreatedAt   string  `json:"created_at"`
}
