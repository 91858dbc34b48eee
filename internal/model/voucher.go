package model

import (
	"time"

	"github.com/google/uuid"
)

// Voucher is the travel document issued to a fully paid passenger with real
// identity data. Codigo is "{reserva.Codigo}-VOUCHER"; the QR payload embeds
// both codes for gate-side verification.
type Voucher struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo     string    `gorm:"uniqueIndex;not null"`
	ReservaID  uuid.UUID `gorm:"type:uuid;index;not null"`
	PasajeroID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ContenidoQR string   `gorm:"not null"`
	PDFPath     *string  `gorm:"column:pdf_path"`
	Activo      bool     `gorm:"not null;default:true"`
	CreatedAt   time.Time

	Reserva  *Reserva  `gorm:"foreignKey:ReservaID"`
	Pasajero *Pasajero `gorm:"foreignKey:PasajeroID"`
}
