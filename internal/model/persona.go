package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocumentoPendienteSufijo marks placeholder people created while a booking
// still lacks real passenger data.
const DocumentoPendienteSufijo = "_PEND"

// Persona is a tagged variant: Tipo "fisica" | "juridica".
// For juridicas, Nombre holds the razón social and NumeroDocumento the RUC;
// Apellido and FechaNacimiento stay nil.
type Persona struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo            string    `gorm:"type:varchar(10);not null"`
	NumeroDocumento string    `gorm:"uniqueIndex;not null"`
	Nombre          string    `gorm:"not null"`
	Apellido        *string
	FechaNacimiento *time.Time `gorm:"type:date"`
	Email           *string
	Telefono        *string
	Direccion       *string
	Activo          bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p *Persona) EsFisica() bool { return p.Tipo == "fisica" }

// NombreCompleto joins nombre y apellido for físicas, razón social otherwise.
func (p *Persona) NombreCompleto() string {
	if p.EsFisica() && p.Apellido != nil && *p.Apellido != "" {
		return p.Nombre + " " + *p.Apellido
	}
	return p.Nombre
}

// DocumentoPendiente reports whether the person is a placeholder awaiting
// real identity data.
func (p *Persona) DocumentoPendiente() bool {
	return strings.HasSuffix(p.NumeroDocumento, DocumentoPendienteSufijo)
}

// Empleado links a persona to the staff roster. Cashier sessions and
// comprobantes reference empleados, never personas directly.
type Empleado struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonaID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Cargo     *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Persona *Persona `gorm:"foreignKey:PersonaID"`
}
