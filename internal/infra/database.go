package infra

import (
	"fmt"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Exposed separately
// so integration tests can migrate a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Persona{},
		&model.Empleado{},
		&model.Usuario{},
		&model.Moneda{},
		&model.CotizacionMoneda{},
		&model.Paquete{},
		&model.Salida{},
		&model.Habitacion{},
		&model.Reserva{},
		&model.Pasajero{},
		&model.Caja{},
		&model.AperturaCaja{},
		&model.MovimientoCaja{},
		&model.CierreCaja{},
		&model.ComprobantePago{},
		&model.ComprobantePagoDistribucion{},
		&model.Voucher{},
		&model.Empresa{},
		&model.Establecimiento{},
		&model.PuntoExpedicion{},
		&model.Timbrado{},
		&model.TipoImpuesto{},
		&model.SubtipoImpuesto{},
		&model.FacturaElectronica{},
		&model.DetalleFactura{},
		&model.NotaCreditoElectronica{},
		&model.Secuencia{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// A caja can only have ONE apertura without cierre at a time. The
		// uniqueness is partial so historic (closed) aperturas don't collide.
		{"unique apertura abierta por caja", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_aperturas_caja_abierta') THEN
    CREATE UNIQUE INDEX idx_aperturas_caja_abierta
        ON apertura_cajas (caja_id)
        WHERE esta_abierta;
  END IF;
END $$`},
		// Partial index for the facturación retry cron query.
		{"index facturas pendientes de reintento", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_facturas_pending_retry') THEN
    CREATE INDEX idx_facturas_pending_retry
        ON factura_electronicas (next_retry_at)
        WHERE estado = 'error' AND next_retry_at IS NOT NULL;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
