package costing

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
)

// ToStockUnits convierte una cantidad a la unidad de stock del material.
// Acepta la unidad de stock (identidad) o la unidad de salida (multiplica por
// IssueToStockFactor); cualquier otra unidad es ErrInvalidInput.
func ToStockUnits(m *entity.Material, qty decimal.Decimal, uom string) (decimal.Decimal, error) {
	switch uom {
	case m.StockUOM:
		return qty, nil
	case m.IssueUOM:
		return qty.Mul(m.IssueToStockFactor), nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}
