package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Paquete is a travel package. Propio=true means the agency owns the seat
// inventory, so cupo is tracked and released on cancellation; third-party
// packages never touch cupo.
type Paquete struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Destino     string    `gorm:"not null"`
	Descripcion *string
	Propio      bool `gorm:"not null;default:false"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Salida is a dated departure of a paquete with its own pricing and seats.
type Salida struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaqueteID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	FechaSalida    time.Time  `gorm:"type:date;not null"`
	FechaRegreso   *time.Time `gorm:"type:date"`
	// Senia is the per-passenger deposit required to confirm a booking.
	Senia          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PrecioActual   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	MonedaID       *uuid.UUID      `gorm:"type:uuid"`
	CupoTotal      int             `gorm:"not null"`
	CupoDisponible int             `gorm:"not null"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Paquete *Paquete `gorm:"foreignKey:PaqueteID"`
	Moneda  *Moneda  `gorm:"foreignKey:MonedaID"`
}

// DiasHastaSalida counts whole days from the given moment to the departure.
func (s *Salida) DiasHastaSalida(desde time.Time) int {
	return int(s.FechaSalida.Sub(desde.Truncate(24*time.Hour)).Hours() / 24)
}

// Habitacion is a room type assignable to a booking.
// Tipo: "single" | "doble" | "triple" | "cuadruple" | "familiar"
type Habitacion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo      string    `gorm:"type:varchar(20);not null"`
	Capacidad int       `gorm:"not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}
