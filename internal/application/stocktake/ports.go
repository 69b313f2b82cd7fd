package stocktake

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios del libro y de conteos: el registro del conteo y su asiento
// de varianza se confirman juntos o ninguno.
type TxRunner interface {
	RunStocktake(ctx context.Context, fn func(
		entries repository.LedgerRepository,
		balances repository.BalanceRepository,
		stocktakes repository.StocktakeRepository,
	) error) error
}

// VariancePoster interfaz para integrar la conciliación con el motor de
// asientos. PostVarianceInTx asienta la varianza sobre el saldo ya bloqueado
// por el caller (misma transacción).
type VariancePoster interface {
	PostVarianceInTx(
		ctx context.Context,
		entries repository.LedgerRepository,
		balances repository.BalanceRepository,
		bal *entity.MaterialBalance,
		variance decimal.Decimal,
		refNo string,
		now time.Time,
	) (*entity.LedgerEntry, error)
}

// PostingMetrics contador de asientos confirmados; se incrementa después del commit.
type PostingMetrics interface {
	EntryPosted(kind string)
}
