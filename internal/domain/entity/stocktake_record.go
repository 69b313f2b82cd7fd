package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StocktakeRecord es el registro inmutable de un conteo físico:
// Variance = CountedQty - SystemQty (saldo del sistema al momento del conteo).
// Si la varianza no es despreciable genera exactamente un asiento STOCKTAKE.
type StocktakeRecord struct {
	ID           string
	CountDate    time.Time
	MaterialCode string
	CountedQty   decimal.Decimal
	SystemQty    decimal.Decimal
	Variance     decimal.Decimal
	Note         string
	CreatedAt    time.Time
}
