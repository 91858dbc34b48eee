package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Rol: "administrador" | "cajero" | "vendedor"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	// EmpleadoID links the login to the staff roster; cashier operations
	// resolve the acting empleado through it.
	EmpleadoID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Activo     bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Empleado *Empleado `gorm:"foreignKey:EmpleadoID"`
}
