package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Filters ─────────────────────────────────────────────────────────────────

type ComprobanteFilter struct {
	PageFilter
	ReservaID   *uuid.UUID `form:"reserva_id"`
	Tipo        string     `form:"tipo"`
	SoloActivos bool       `form:"solo_activos"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DistribucionRequest struct {
	PasajeroID string          `json:"pasajero_id" validate:"required,uuid"`
	Monto      decimal.Decimal `json:"monto"       validate:"required"`
}

type CrearComprobanteRequest struct {
	ReservaID     string                `json:"reserva_id"     validate:"required,uuid"`
	Tipo          string                `json:"tipo"           validate:"required,oneof=senia pago_parcial pago_total devolucion"`
	Monto         decimal.Decimal       `json:"monto"          validate:"required"`
	MetodoPago    string                `json:"metodo_pago"    validate:"required,oneof=efectivo tarjeta_debito tarjeta_credito transferencia cheque qr otro"`
	Referencia    *string               `json:"referencia"`
	Observaciones *string               `json:"observaciones"`
	Distribuciones []DistribucionRequest `json:"distribuciones" validate:"required,min=1,dive"`
}

type AnularComprobanteRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DistribucionResponse struct {
	PasajeroID string          `json:"pasajero_id"`
	Pasajero   string          `json:"pasajero"`
	Monto      decimal.Decimal `json:"monto"`
}

type ComprobanteResponse struct {
	ID            string                 `json:"id"`
	Codigo        string                 `json:"codigo"`
	ReservaID     string                 `json:"reserva_id"`
	ReservaCodigo string                 `json:"reserva_codigo"`
	Tipo          string                 `json:"tipo"`
	Monto         decimal.Decimal        `json:"monto"`
	MetodoPago    string                 `json:"metodo_pago"`
	Referencia    *string                `json:"referencia"`
	Empleado      string                 `json:"empleado"`
	Observaciones *string                `json:"observaciones"`
	PDFGenerado   bool                   `json:"pdf_generado"`
	PDFPath       *string                `json:"pdf_path,omitempty"`
	Activo        bool                   `json:"activo"`
	Distribuciones []DistribucionResponse `json:"distribuciones"`
	CreatedAt     string                 `json:"created_at"`
}
