package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Filters ─────────────────────────────────────────────────────────────────

type CajaFilter struct {
	PageFilter
	Estado      string `form:"estado"`
	SoloActivas bool   `form:"solo_activas"`
}

type AperturaFilter struct {
	PageFilter
	CajaID       *uuid.UUID `form:"caja_id"`
	SoloAbiertas bool       `form:"solo_abiertas"`
}

type MovimientoFilter struct {
	PageFilter
	AperturaID *uuid.UUID `form:"apertura_id"`
	Tipo       string     `form:"tipo"`
	Concepto   string     `form:"concepto"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCajaRequest struct {
	Nombre            string `json:"nombre"              validate:"required,min=2,max=100"`
	PuntoExpedicionID string `json:"punto_expedicion_id" validate:"required,uuid"`
}

type AbrirCajaRequest struct {
	CajaID        string          `json:"caja_id"       validate:"required,uuid"`
	MontoInicial  decimal.Decimal `json:"monto_inicial" validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

type MovimientoManualRequest struct {
	AperturaID  string          `json:"apertura_id" validate:"required,uuid"`
	Tipo        string          `json:"tipo"        validate:"required,oneof=ingreso egreso"`
	Concepto    string          `json:"concepto"    validate:"required"`
	MetodoPago  string          `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta_debito tarjeta_credito transferencia cheque qr otro"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Referencia  *string         `json:"referencia"`
	Descripcion *string         `json:"descripcion"`
}

type CerrarCajaRequest struct {
	AperturaID        string          `json:"apertura_id"         validate:"required,uuid"`
	SaldoRealEfectivo decimal.Decimal `json:"saldo_real_efectivo" validate:"min=0"`
	// DetalleBilletes: denominación -> cantidad, e.g. {"100000": 5}
	DetalleBilletes json.RawMessage `json:"detalle_billetes"`
	Observaciones   *string         `json:"observaciones"`
}

type AutorizarCierreRequest struct {
	AutorizadoPorID string `json:"autorizado_por_id" validate:"required,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Numero      string          `json:"numero"`
	Estado      string          `json:"estado"`
	SaldoActual decimal.Decimal `json:"saldo_actual"`
	Activo      bool            `json:"activo"`
	PuedeAbrir  bool            `json:"puede_abrir"`
}

type AperturaResponse struct {
	ID            string          `json:"id"`
	Codigo        string          `json:"codigo"`
	CajaID        string          `json:"caja_id"`
	CajaNombre    string          `json:"caja_nombre"`
	Responsable   string          `json:"responsable"`
	MontoInicial  decimal.Decimal `json:"monto_inicial"`
	SaldoActual   decimal.Decimal `json:"saldo_actual"`
	EstaAbierta   bool            `json:"esta_abierta"`
	FechaApertura string          `json:"fecha_apertura"`
	Observaciones *string         `json:"observaciones"`
}

type MovimientoResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	AperturaID  string          `json:"apertura_id"`
	Tipo        string          `json:"tipo"`
	Concepto    string          `json:"concepto"`
	MetodoPago  string          `json:"metodo_pago"`
	Monto       decimal.Decimal `json:"monto"`
	Referencia  *string         `json:"referencia"`
	Descripcion *string         `json:"descripcion"`
	Comprobante *string         `json:"comprobante"`
	Activo      bool            `json:"activo"`
	CreatedAt   string          `json:"created_at"`
}

type CierreResponse struct {
	ID                   string           `json:"id"`
	Codigo               string           `json:"codigo"`
	AperturaID           string           `json:"apertura_id"`
	TotalVentasEfectivo  decimal.Decimal  `json:"total_ventas_efectivo"`
	TotalVentasTarjetas  decimal.Decimal  `json:"total_ventas_tarjetas"`
	TotalTransferencias  decimal.Decimal  `json:"total_transferencias"`
	TotalCheques         decimal.Decimal  `json:"total_cheques"`
	TotalOtros           decimal.Decimal  `json:"total_otros"`
	TotalEgresos         decimal.Decimal  `json:"total_egresos"`
	SaldoTeoricoEfectivo decimal.Decimal  `json:"saldo_teorico_efectivo"`
	SaldoTeoricoTotal    decimal.Decimal  `json:"saldo_teorico_total"`
	SaldoRealEfectivo    decimal.Decimal  `json:"saldo_real_efectivo"`
	DetalleBilletes      json.RawMessage  `json:"detalle_billetes"`
	Diferencia           decimal.Decimal  `json:"diferencia"`
	DiferenciaPorcentaje *decimal.Decimal `json:"diferencia_porcentaje"`
	RequiereAutorizacion bool             `json:"requiere_autorizacion"`
	AutorizadoPor        *string          `json:"autorizado_por"`
	FechaAutorizacion    *string          `json:"fecha_autorizacion"`
	Observaciones        *string          `json:"observaciones"`
	FechaCierre          string           `json:"fecha_cierre"`
}

// TengoCajaAbiertaResponse tells the frontend whether the logged-in employee
// holds an open session and where.
type TengoCajaAbiertaResponse struct {
	TieneCajaAbierta bool              `json:"tiene_caja_abierta"`
	Apertura         *AperturaResponse `json:"apertura"`
}

type ResumenGeneralResponse struct {
	TotalCajas        int             `json:"total_cajas"`
	CajasAbiertas     int             `json:"cajas_abiertas"`
	CajasCerradas     int             `json:"cajas_cerradas"`
	SaldoTotalAbierto decimal.Decimal `json:"saldo_total_abierto"`
}
