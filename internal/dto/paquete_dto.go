package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPaqueteRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2"`
	Destino     string  `json:"destino"     validate:"required,min=2"`
	Descripcion *string `json:"descripcion"`
	Propio      bool    `json:"propio"`
}

type CrearSalidaRequest struct {
	PaqueteID    string          `json:"paquete_id"    validate:"required,uuid"`
	FechaSalida  string          `json:"fecha_salida"  validate:"required,datetime=2006-01-02"`
	FechaRegreso *string         `json:"fecha_regreso" validate:"omitempty,datetime=2006-01-02"`
	Senia        decimal.Decimal `json:"senia"         validate:"min=0"`
	PrecioActual decimal.Decimal `json:"precio_actual" validate:"required"`
	MonedaID     *string         `json:"moneda_id"     validate:"omitempty,uuid"`
	CupoTotal    int             `json:"cupo_total"    validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PaqueteResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Destino     string  `json:"destino"`
	Descripcion *string `json:"descripcion"`
	Propio      bool    `json:"propio"`
	Activo      bool    `json:"activo"`
}

type SalidaResponse struct {
	ID             string          `json:"id"`
	PaqueteID      string          `json:"paquete_id"`
	FechaSalida    string          `json:"fecha_salida"`
	FechaRegreso   *string         `json:"fecha_regreso"`
	Senia          decimal.Decimal `json:"senia"`
	PrecioActual   decimal.Decimal `json:"precio_actual"`
	CupoTotal      int             `json:"cupo_total"`
	CupoDisponible int             `json:"cupo_disponible"`
	Activo         bool            `json:"activo"`
}

type HabitacionResponse struct {
	ID        string `json:"id"`
	Tipo      string `json:"tipo"`
	Capacidad int    `json:"capacidad"`
}
