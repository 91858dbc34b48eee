package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja is a physical cash register tied 1:1 to a punto de expedición.
// Numero follows "EST-PE" (establecimiento-punto). Estado: "abierta" | "cerrada"
type Caja struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre            string    `gorm:"not null"`
	Numero            string    `gorm:"type:varchar(10);uniqueIndex;not null"`
	PuntoExpedicionID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Estado            string    `gorm:"type:varchar(20);not null;default:'cerrada'"`
	// SaldoActual is recomputed from the open apertura's movements, never
	// edited by hand.
	SaldoActual decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	PuntoExpedicion *PuntoExpedicion `gorm:"foreignKey:PuntoExpedicionID"`
}

func (c *Caja) EstaAbierta() bool { return c.Estado == "abierta" }

// PuedeAbrir: only inactive or already-open registers are refused.
func (c *Caja) PuedeAbrir() bool { return c.Activo && c.Estado == "cerrada" }

// AperturaCaja opens a working session on a register. At most one apertura
// per caja may have EstaAbierta=true (partial unique index).
type AperturaCaja struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo        string    `gorm:"uniqueIndex;not null"`
	CajaID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ResponsableID uuid.UUID `gorm:"type:uuid;not null"`
	MontoInicial  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	EstaAbierta   bool            `gorm:"not null;default:true"`
	FechaApertura time.Time       `gorm:"not null"`
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Caja        *Caja            `gorm:"foreignKey:CajaID"`
	Responsable *Empleado        `gorm:"foreignKey:ResponsableID"`
	Movimientos []MovimientoCaja `gorm:"foreignKey:AperturaID"`
}

// MovimientoCaja is an entry in the session ledger. Movements are never
// modified or deleted: corrections flip Activo or post inverse entries.
// Tipo: "ingreso" | "egreso"
// Conceptos de ingreso: venta_efectivo, venta_tarjeta, cobro_cuenta,
// deposito, transferencia_recibida, ajuste_positivo, otro_ingreso.
// Conceptos de egreso: pago_proveedor, pago_servicio, gasto_operativo,
// retiro_efectivo, devolucion, ajuste_negativo, otro_egreso.
type MovimientoCaja struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo        string     `gorm:"uniqueIndex;not null"`
	AperturaID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ComprobanteID *uuid.UUID `gorm:"type:uuid;index"`
	Tipo          string     `gorm:"type:varchar(10);not null"`
	Concepto      string     `gorm:"type:varchar(30);not null"`
	MetodoPago    string     `gorm:"type:varchar(20);not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Referencia    *string
	Descripcion   *string
	UsuarioRegistroID uuid.UUID `gorm:"type:uuid;not null"`
	Activo            bool      `gorm:"not null;default:true"`
	CreatedAt         time.Time

	Comprobante *ComprobantePago `gorm:"foreignKey:ComprobanteID"`
}

// CierreCaja is the arqueo that closes an apertura. Totals are grouped by
// payment method family; the cash count drives the diferencia.
type CierreCaja struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo     string    `gorm:"uniqueIndex;not null"`
	AperturaID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	TotalVentasEfectivo decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalVentasTarjetas decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalTransferencias decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalCheques        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalOtros          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalEgresos        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`

	// SaldoTeoricoEfectivo = inicial + efectivo - egresos (what the drawer
	// should hold). SaldoTeoricoTotal adds the non-cash income methods.
	SaldoTeoricoEfectivo decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SaldoTeoricoTotal    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SaldoRealEfectivo    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	// DetalleBilletes: denomination -> count, e.g. {"100000": 5, "50000": 2}
	DetalleBilletes json.RawMessage `gorm:"type:jsonb"`

	Diferencia decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	// DiferenciaPorcentaje stays nil when the teórico is zero.
	DiferenciaPorcentaje *decimal.Decimal `gorm:"type:decimal(8,2)"`
	RequiereAutorizacion bool             `gorm:"not null;default:false"`
	AutorizadoPorID      *uuid.UUID       `gorm:"type:uuid"`
	FechaAutorizacion    *time.Time
	Observaciones        *string
	FechaCierre          time.Time `gorm:"not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Apertura      *AperturaCaja `gorm:"foreignKey:AperturaID"`
	AutorizadoPor *Empleado     `gorm:"foreignKey:AutorizadoPorID"`
}
