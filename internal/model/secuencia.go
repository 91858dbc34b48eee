package model

// Secuencia backs the sequential display codes (APR, MOV, CIE, CPG, RSV,
// NCE and invoice correlatives). Allocation locks the row with
// SELECT ... FOR UPDATE inside the caller's transaction; counting rows to
// derive the next number is forbidden.
type Secuencia struct {
	Scope       string `gorm:"primaryKey;type:varchar(40)"`
	Anio        int    `gorm:"primaryKey"`
	UltimoValor int64  `gorm:"not null;default:0"`
}
