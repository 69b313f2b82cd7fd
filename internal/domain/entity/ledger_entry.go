package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del libro de movimientos.
const (
	EntryKindPurchase    = "PURCHASE"    // entrada por compra
	EntryKindConsumption = "CONSUMPTION" // salida por producción o venta
	EntryKindAdjustment  = "ADJUSTMENT"  // ajuste manual
	EntryKindStocktake   = "STOCKTAKE"   // varianza de conteo físico
)

// Referencias de negocio usadas en RefType.
const (
	RefTypePurchase  = "PURCHASE"
	RefTypeBatch     = "BATCH"
	RefTypeSale      = "SALE"
	RefTypeManual    = "MANUAL"
	RefTypeStocktake = "STOCKTAKE"
)

// LedgerEntry es un asiento inmutable del libro de movimientos (append-only).
// Qty está en unidades de stock, con signo: positivo entrada, negativo salida.
// TotalCost = Qty * UnitCost, también con signo. Nunca se actualiza ni borra.
type LedgerEntry struct {
	ID           int64
	EntryDate    time.Time
	Kind         string
	RefType      string
	RefNo        string
	MaterialCode string
	Qty          decimal.Decimal
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
	Note         string
	CreatedAt    time.Time
}
