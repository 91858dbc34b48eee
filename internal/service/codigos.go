package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"gorm.io/gorm"
)

// Sequence scopes for display codes. Each scope restarts per year.
const (
	scopeApertura    = "APR"
	scopeMovimiento  = "MOV"
	scopeCierre      = "CIE"
	scopeComprobante = "CPG"
	scopeReserva     = "RSV"
	scopeNotaCredito = "NCE"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// nextCodigo allocates the next "PREFIX-YYYY-NNNN" display code. The pad is
// four digits but the number keeps growing past 9999.
func nextCodigo(ctx context.Context, tx *gorm.DB, secuencias repository.SecuenciaRepository, prefijo string, ahora time.Time) (string, error) {
	anio := ahora.Year()
	n, err := secuencias.Next(ctx, tx, prefijo, anio)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%04d", prefijo, anio, n), nil
}

// nextNumeroFactura allocates the 7-digit correlative of a punto de
// expedición and formats the full "EST-PE-NNNNNNN" invoice number.
// Correlatives never reset, so the year component of the sequence is 0.
func nextNumeroFactura(ctx context.Context, tx *gorm.DB, secuencias repository.SecuenciaRepository, establecimiento, punto string) (string, error) {
	scope := fmt.Sprintf("FAC:%s-%s", establecimiento, punto)
	n, err := secuencias.Next(ctx, tx, scope, 0)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%07d", establecimiento, punto, n), nil
}
