package consumption

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cada línea de consumo corre en su propia transacción: las líneas confirmadas
// quedan firmes aunque una posterior falle.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entries repository.LedgerRepository,
		balances repository.BalanceRepository,
	) error) error
}

// StockIssuer interfaz para integrar el calculador de consumos con el motor
// de asientos. IssueInTx ejecuta una salida usando los repositorios del
// caller (misma transacción); si retorna error (ej: ErrInsufficientStock) el
// caller aborta las líneas restantes.
type StockIssuer interface {
	IssueInTx(
		ctx context.Context,
		entries repository.LedgerRepository,
		balances repository.BalanceRepository,
		material *entity.Material,
		qty decimal.Decimal,
		refType, refNo, note string,
		now time.Time,
	) (*entity.LedgerEntry, error)
}

// PostingMetrics contadores de observabilidad del consumo: asientos
// confirmados (por línea, después del commit de esa línea) y rechazos por
// stock insuficiente. Mismos contadores que alimenta el motor de asientos.
type PostingMetrics interface {
	EntryPosted(kind string)
	PostingRejected(reason string)
}
