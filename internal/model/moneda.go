package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Moneda is a currency the agency operates with. Codigo is ISO-4217.
// PYG is the base currency; all conversions pass through guaraníes.
type Moneda struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre  string    `gorm:"not null"`
	Simbolo string    `gorm:"type:varchar(5);not null"`
	Codigo  string    `gorm:"type:varchar(3);uniqueIndex;not null"`
	Activo  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EsBase reports whether the currency is the guaraní.
func (m *Moneda) EsBase() bool { return m.Codigo == "PYG" }

// CotizacionMoneda is the daily exchange rate of a currency expressed in
// guaraníes. One row per currency per day; the effective rate for a date is
// the newest row with Fecha <= that date.
type CotizacionMoneda struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MonedaID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_cotizaciones_moneda_fecha"`
	Fecha            time.Time       `gorm:"type:date;not null;uniqueIndex:ux_cotizaciones_moneda_fecha"`
	ValorEnGuaranies decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt        time.Time

	Moneda *Moneda `gorm:"foreignKey:MonedaID"`
}
