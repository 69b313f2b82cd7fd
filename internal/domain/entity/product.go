package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado (pintura, thinner) cuya fórmula
// consume materias primas. BaseBatchSize es el tamaño del lote estándar
// (multiplicador 1), p.ej. 200 L.
type Product struct {
	Code          string
	Name          string
	Category      string
	BaseBatchSize decimal.Decimal
	Active        bool
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
