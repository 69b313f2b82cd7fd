package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
)

// LedgerRepository define el puerto del libro de movimientos. El libro es
// append-only: solo existen Create y consultas, nunca update ni delete.
type LedgerRepository interface {
	// Create inserta el asiento y rellena ID y CreatedAt generados por la DB.
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	// List devuelve asientos del más reciente al más antiguo. materialCode y
	// kind vacíos no filtran.
	List(ctx context.Context, materialCode, kind string, limit, offset int) ([]*entity.LedgerEntry, error)
	Count(ctx context.Context, materialCode, kind string) (int, error)
	// CountByMaterial cuenta los asientos de un material (para vetar el
	// borrado de materiales con historia).
	CountByMaterial(ctx context.Context, materialCode string) (int, error)
	// SumByMaterial pliega el libro de un material: SUM(qty) y SUM(total_cost).
	SumByMaterial(ctx context.Context, materialCode string) (qty, value decimal.Decimal, err error)
}
