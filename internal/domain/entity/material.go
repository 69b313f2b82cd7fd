package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de materia prima.
const (
	CategoryPigment   = "PIGMENT"
	CategorySolvent   = "SOLVENT"
	CategoryResin     = "RESIN"
	CategoryAdditive  = "ADDITIVE"
	CategoryPackaging = "PACKAGING"
	CategoryOther     = "OTHER"
)

// ValidCategory indica si la categoría pertenece al catálogo conocido.
func ValidCategory(c string) bool {
	switch c {
	case CategoryPigment, CategorySolvent, CategoryResin, CategoryAdditive, CategoryPackaging, CategoryOther:
		return true
	}
	return false
}

// Material representa una materia prima del maestro (código inmutable).
// IssueToStockFactor convierte cantidades en unidad de salida (IssueUOM)
// a la unidad de almacenamiento (StockUOM): qty_stock = qty_issue * factor.
// StdWastagePct es dato de catálogo para planeación; el motor nunca lo aplica
// automáticamente a los movimientos.
type Material struct {
	Code               string
	Name               string
	Category           string
	StockUOM           string
	IssueUOM           string
	IssueToStockFactor decimal.Decimal
	StdWastagePct      decimal.Decimal
	IsCritical         bool
	Active             bool
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
