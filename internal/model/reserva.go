package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reserva is a booking against a salida.
// Estado: "pendiente" | "confirmada" | "finalizada" | "cancelada"
// Estado moves forward AND backward with payment facts; "cancelada" is
// manual and absorbing.
// ModalidadFacturacion: "global" | "individual" (individual + crédito is rejected)
// CondicionPago: "contado" | "credito"
type Reserva struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo               string    `gorm:"uniqueIndex;not null"`
	Estado               string    `gorm:"type:varchar(20);not null;default:'pendiente'"`
	ModalidadFacturacion string    `gorm:"type:varchar(20);not null;default:'global'"`
	CondicionPago        string    `gorm:"type:varchar(20);not null;default:'contado'"`
	TitularID            uuid.UUID `gorm:"type:uuid;not null"`
	PaqueteID            uuid.UUID `gorm:"type:uuid;index;not null"`
	SalidaID             uuid.UUID `gorm:"type:uuid;index;not null"`
	HabitacionID         *uuid.UUID `gorm:"type:uuid"`
	CantidadPasajeros    int        `gorm:"not null"`
	PrecioUnitario       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	// SeniaUnitaria is copied from the salida at creation so later price
	// changes never move the confirmation threshold of an existing booking.
	SeniaUnitaria decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	// MontoPagado is recomputed from active comprobantes, never edited by hand.
	MontoPagado    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DatosCompletos bool            `gorm:"not null;default:false"`
	// MotivoCancelacion: id "1".."8", "8" = otros.
	MotivoCancelacion      *string `gorm:"type:varchar(2)"`
	ObservacionCancelacion *string
	FechaCancelacion       *time.Time
	CuposLiberados         bool `gorm:"not null;default:false"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Titular    *Persona    `gorm:"foreignKey:TitularID"`
	Paquete    *Paquete    `gorm:"foreignKey:PaqueteID"`
	Salida     *Salida     `gorm:"foreignKey:SalidaID"`
	Habitacion *Habitacion `gorm:"foreignKey:HabitacionID"`
	Pasajeros  []Pasajero  `gorm:"foreignKey:ReservaID"`
}

func (r *Reserva) EstaCancelada() bool { return r.Estado == "cancelada" }

// SeniaTotal is the deposit needed to confirm: seña unitaria por pasajero.
func (r *Reserva) SeniaTotal() decimal.Decimal {
	return r.SeniaUnitaria.Mul(decimal.NewFromInt(int64(r.CantidadPasajeros)))
}

// PrecioTotal is the full price of the booking at the agreed unit price.
func (r *Reserva) PrecioTotal() decimal.Decimal {
	return r.PrecioUnitario.Mul(decimal.NewFromInt(int64(r.CantidadPasajeros)))
}

// Pasajero is a seat on a booking. PorAsignar marks placeholder passengers
// whose persona still carries a "_PEND" document.
type Pasajero struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReservaID uuid.UUID `gorm:"type:uuid;index;not null"`
	PersonaID uuid.UUID `gorm:"type:uuid;not null"`
	EsTitular bool      `gorm:"not null;default:false"`
	PorAsignar bool     `gorm:"not null;default:false"`
	// PrecioAsignado defaults to the reserva's precio unitario.
	PrecioAsignado decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	// MontoPagado aggregates distribuciones of active comprobantes, with
	// devoluciones subtracting; clamped at zero. Credit notes without a
	// linked devolución reduce the reserva total only, never this field.
	MontoPagado decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Persona *Persona `gorm:"foreignKey:PersonaID"`
}

func (p *Pasajero) SaldoPendiente() decimal.Decimal {
	saldo := p.PrecioAsignado.Sub(p.MontoPagado)
	if saldo.IsNegative() {
		return decimal.Zero
	}
	return saldo
}

func (p *Pasajero) PorcentajePagado() decimal.Decimal {
	if p.PrecioAsignado.IsZero() {
		return decimal.Zero
	}
	return p.MontoPagado.Div(p.PrecioAsignado).Mul(decimal.NewFromInt(100)).Round(2)
}

func (p *Pasajero) TieneSeniaPagada(senia decimal.Decimal) bool {
	return p.MontoPagado.GreaterThanOrEqual(senia)
}

func (p *Pasajero) EstaTotalmentePagado() bool {
	return p.MontoPagado.GreaterThanOrEqual(p.PrecioAsignado)
}
