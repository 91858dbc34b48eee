package repository

import (
	"context"

	"gorm.io/gorm"
)

// SecuenciaRepository allocates sequential numbers for display codes.
// Next must run inside the caller's transaction so a rolled-back operation
// never burns a number silently observed by another reader.
type SecuenciaRepository interface {
	Next(ctx context.Context, tx *gorm.DB, scope string, anio int) (int64, error)
}

type secuenciaRepo struct{ db *gorm.DB }

func NewSecuenciaRepository(db *gorm.DB) SecuenciaRepository { return &secuenciaRepo{db: db} }

func (r *secuenciaRepo) Next(ctx context.Context, tx *gorm.DB, scope string, anio int) (int64, error) {
	// Atomic upsert-and-increment; the conflicting row is locked until the
	// enclosing transaction commits. Never derived from a row count.
	var valor int64
	err := tx.WithContext(ctx).Raw(`
		INSERT INTO secuencias (scope, anio, ultimo_valor) VALUES (?, ?, 1)
		ON CONFLICT (scope, anio)
		DO UPDATE SET ultimo_valor = secuencias.ultimo_valor + 1
		RETURNING ultimo_valor`, scope, anio).Scan(&valor).Error
	return valor, err
}
