package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMonedaRequest struct {
	Nombre  string `json:"nombre"  validate:"required,min=2"`
	Simbolo string `json:"simbolo" validate:"required,min=1,max=5"`
	Codigo  string `json:"codigo"  validate:"required,len=3,uppercase"`
}

type CrearCotizacionRequest struct {
	MonedaID         string          `json:"moneda_id"          validate:"required,uuid"`
	Fecha            string          `json:"fecha"              validate:"required,datetime=2006-01-02"`
	ValorEnGuaranies decimal.Decimal `json:"valor_en_guaranies" validate:"required"`
}

type ConvertirRequest struct {
	Monto  decimal.Decimal `json:"monto"   validate:"required"`
	Origen string          `json:"origen"  validate:"required,len=3"`
	Destino string         `json:"destino" validate:"required,len=3"`
	Fecha  *string         `json:"fecha"   validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MonedaResponse struct {
	ID      string `json:"id"`
	Nombre  string `json:"nombre"`
	Simbolo string `json:"simbolo"`
	Codigo  string `json:"codigo"`
	Activo  bool   `json:"activo"`
}

type CotizacionResponse struct {
	ID               string          `json:"id"`
	MonedaID         string          `json:"moneda_id"`
	Codigo           string          `json:"codigo"`
	Fecha            string          `json:"fecha"`
	ValorEnGuaranies decimal.Decimal `json:"valor_en_guaranies"`
}

type ConvertirResponse struct {
	Monto           decimal.Decimal `json:"monto"`
	Origen          string          `json:"origen"`
	Destino         string          `json:"destino"`
	Fecha           string          `json:"fecha"`
	MontoConvertido decimal.Decimal `json:"monto_convertido"`
	CotizacionUsada decimal.Decimal `json:"cotizacion_usada"`
}
