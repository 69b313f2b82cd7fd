package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockOnHandResult fila cruda de la vista de existencias: saldo, costo
// promedio derivado y valor por material. La produce la DB; el use case la
// convierte en DTO.
type StockOnHandResult struct {
	MaterialCode string
	Name         string
	Category     string
	StockUOM     string
	IsCritical   bool
	QtyOnHand    decimal.Decimal
	AvgCost      decimal.Decimal // TotalValue/QtyOnHand, 0 si el saldo es despreciable
	TotalValue   decimal.Decimal
}

// CategoryValuationResult subtotal de valorización por categoría.
type CategoryValuationResult struct {
	Category      string
	MaterialCount int
	TotalValue    decimal.Decimal
}

// ReportRepository define las consultas de lectura para existencias y
// valorización. Las implementaciones son read-only.
type ReportRepository interface {
	// StockOnHand devuelve existencias no despreciables ordenadas por código;
	// search filtra por código o nombre (ILIKE), vacío no filtra.
	StockOnHand(ctx context.Context, search string) ([]StockOnHandResult, error)
	// ValuationByCategory agrupa el valor del inventario por categoría.
	ValuationByCategory(ctx context.Context) ([]CategoryValuationResult, error)
	// CountCriticalShortages cuenta materiales críticos con saldo <= 0.
	CountCriticalShortages(ctx context.Context) (int, error)
}
