package model

import (
	"time"

	"github.com/google/uuid"
)

// Empresa is the issuing company. The system runs single-tenant: Singleton
// always holds true and carries a unique index, so a second row is rejected
// by the database rather than by application code.
type Empresa struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"not null"`
	RUC         string    `gorm:"type:varchar(20);not null;column:ruc"`
	Direccion   *string
	Telefono    *string
	Email       *string
	// ActividadEconomica as registered with the tax authority.
	ActividadEconomica *string
	Singleton          bool `gorm:"not null;default:true;uniqueIndex"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Establecimiento is a branch of the empresa. Codigo is the 3-digit prefix
// of invoice numbers ("001").
type Establecimiento struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_establecimiento_empresa_codigo"`
	Codigo    string    `gorm:"type:varchar(3);not null;uniqueIndex:ux_establecimiento_empresa_codigo"`
	Nombre    string    `gorm:"not null"`
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Empresa *Empresa `gorm:"foreignKey:EmpresaID"`
}

// PuntoExpedicion is an expedition point within an establecimiento, the
// middle segment of invoice numbers ("001-002-0000123").
type PuntoExpedicion struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstablecimientoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_punto_expedicion_establecimiento_codigo"`
	Codigo            string    `gorm:"type:varchar(3);not null;uniqueIndex:ux_punto_expedicion_establecimiento_codigo"`
	Descripcion       *string
	Activo            bool `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Establecimiento *Establecimiento `gorm:"foreignKey:EstablecimientoID"`
}

// Timbrado is the fiscal authorization that legitimizes invoice numbers
// during its vigencia window.
type Timbrado struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero       string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	FechaInicio  time.Time `gorm:"type:date;not null"`
	FechaFin     time.Time `gorm:"type:date;not null"`
	Activo       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Vigente reports whether the timbrado covers the given date.
func (t *Timbrado) Vigente(fecha time.Time) bool {
	return t.Activo && !fecha.Before(t.FechaInicio) && !fecha.After(t.FechaFin)
}

// TipoImpuesto groups tax subtypes (IVA with 10%, 5% and exento).
type TipoImpuesto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	CreatedAt   time.Time

	Subtipos []SubtipoImpuesto `gorm:"foreignKey:TipoImpuestoID"`
}

type SubtipoImpuesto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoImpuestoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre         string    `gorm:"not null"`
	// Porcentaje: 10, 5 or 0.
	Porcentaje int `gorm:"not null"`
	CreatedAt  time.Time
}
