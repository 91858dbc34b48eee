package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComprobantePago is a payment receipt against a booking.
// Tipo: "senia" | "pago_parcial" | "pago_total" | "devolucion"
// MetodoPago: "efectivo" | "tarjeta_debito" | "tarjeta_credito" |
// "transferencia" | "cheque" | "qr" | "otro"
// Voiding never deletes: Activo flips to false, the motivo is prepended to
// Observaciones and an inverse movimiento de caja is posted.
type ComprobantePago struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo     string    `gorm:"uniqueIndex;not null"`
	ReservaID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo       string    `gorm:"type:varchar(20);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`
	Referencia *string
	EmpleadoID uuid.UUID `gorm:"type:uuid;not null"`
	Observaciones *string
	PDFGenerado   bool    `gorm:"not null;default:false"`
	PDFPath       *string `gorm:"column:pdf_path"`
	Activo        bool    `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Reserva        *Reserva                      `gorm:"foreignKey:ReservaID"`
	Empleado       *Empleado                     `gorm:"foreignKey:EmpleadoID"`
	Distribuciones []ComprobantePagoDistribucion `gorm:"foreignKey:ComprobanteID"`
}

func (c *ComprobantePago) EsDevolucion() bool { return c.Tipo == "devolucion" }

// TotalDistribuido sums the per-passenger split; must equal Monto.
func (c *ComprobantePago) TotalDistribuido() decimal.Decimal {
	total := decimal.Zero
	for _, d := range c.Distribuciones {
		total = total.Add(d.Monto)
	}
	return total
}

// ComprobantePagoDistribucion assigns a share of a comprobante to one
// passenger. A passenger appears at most once per comprobante.
type ComprobantePagoDistribucion struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComprobanteID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_distribucion_comprobante_pasajero"`
	PasajeroID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_distribucion_comprobante_pasajero"`
	Monto         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt     time.Time

	Pasajero *Pasajero `gorm:"foreignKey:PasajeroID"`
}
