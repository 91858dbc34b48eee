package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FacturaElectronica is an electronic invoice. Rows with EsConfiguracion=true
// are templates holding the active empresa/establecimiento/punto/timbrado
// combination; real invoices copy that context at emission.
// Numero: "EST-PE-NNNNNNN" with a 7-digit correlative allocated atomically
// per punto de expedición.
// Estado: "pendiente" | "emitida" | "rechazada" | "error"
type FacturaElectronica struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID         uuid.UUID  `gorm:"type:uuid;not null"`
	EstablecimientoID uuid.UUID  `gorm:"type:uuid;not null"`
	PuntoExpedicionID uuid.UUID  `gorm:"type:uuid;index;not null"`
	TimbradoID        uuid.UUID  `gorm:"type:uuid;not null"`
	ReservaID         *uuid.UUID `gorm:"type:uuid;index"`
	ComprobanteID     *uuid.UUID `gorm:"type:uuid;index"`
	EsConfiguracion   bool       `gorm:"not null;default:false"`
	Numero            *string    `gorm:"uniqueIndex"`
	// CDC is the 44-digit control code required by SIFEN.
	CDC            *string `gorm:"type:varchar(44);column:cdc"`
	ReceptorID     *uuid.UUID `gorm:"type:uuid"`
	FechaEmision   *time.Time
	CondicionVenta *string `gorm:"type:varchar(20)"`
	MonedaID       *uuid.UUID `gorm:"type:uuid"`

	TotalGravado10 decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalGravado5  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalExentas   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalIVA       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:total_iva"`
	TotalGeneral   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`

	Estado      string  `gorm:"type:varchar(20);not null;default:'pendiente'"`
	ContenidoQR *string `gorm:"column:contenido_qr"`
	PDFPath     *string `gorm:"column:pdf_path"`
	// Retry fields used by the cron to re-attempt failed SIFEN submissions.
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Empresa         *Empresa              `gorm:"foreignKey:EmpresaID"`
	Establecimiento *Establecimiento      `gorm:"foreignKey:EstablecimientoID"`
	PuntoExpedicion *PuntoExpedicion      `gorm:"foreignKey:PuntoExpedicionID"`
	Timbrado        *Timbrado             `gorm:"foreignKey:TimbradoID"`
	Receptor        *Persona              `gorm:"foreignKey:ReceptorID"`
	Detalles        []DetalleFactura      `gorm:"foreignKey:FacturaID"`
	NotasCredito    []NotaCreditoElectronica `gorm:"foreignKey:FacturaID"`
}

// DetalleFactura is an invoice line. IVA is derived from the gross amount:
// 10% -> total/11, 5% -> total/21, exento -> 0.
type DetalleFactura struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Descripcion    string          `gorm:"not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	// TasaIVA: 10, 5 or 0.
	TasaIVA     int             `gorm:"not null;column:tasa_iva"`
	MontoIVA    decimal.Decimal `gorm:"type:decimal(15,2);not null;column:monto_iva"`
	MontoTotal  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt   time.Time
}

// NotaCreditoElectronica reverses part or all of an invoice. Issuing one
// demotes the booking's paid amounts unless a matching devolución
// comprobante already accounts for the money leaving.
type NotaCreditoElectronica struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero    string    `gorm:"uniqueIndex;not null"`
	FacturaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Motivo    string    `gorm:"not null"`
	// DevolucionComprobanteID links the refund receipt when money was
	// actually returned; nil means the NC only corrects billing.
	DevolucionComprobanteID *uuid.UUID      `gorm:"type:uuid"`
	TotalGeneral            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Estado                  string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	FechaEmision            time.Time       `gorm:"not null"`
	CreatedAt               time.Time
	UpdatedAt               time.Time

	Factura *FacturaElectronica `gorm:"foreignKey:FacturaID"`
}
