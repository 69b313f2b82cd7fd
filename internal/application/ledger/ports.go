package ledger

import (
	"context"

	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el asiento y su saldo materializado se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entries repository.LedgerRepository,
		balances repository.BalanceRepository,
	) error) error
}

// PostingMetrics contadores de observabilidad del motor de asientos.
// Se incrementan después del commit, nunca dentro de la transacción.
type PostingMetrics interface {
	EntryPosted(kind string)
	PostingRejected(reason string)
}

// NopMetrics implementación nula de PostingMetrics para tests y despliegues
// sin métricas.
type NopMetrics struct{}

func (NopMetrics) EntryPosted(string)     {}
func (NopMetrics) PostingRejected(string) {}

var _ PostingMetrics = NopMetrics{}
