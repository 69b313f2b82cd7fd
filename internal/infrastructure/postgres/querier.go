package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrae la ejecución de SQL sobre *pgxpool.Pool o pgx.Tx, para que
// los repositorios funcionen igual fuera y dentro de transacciones.
// SendBatch manda varios statements en un solo round trip; el protocolo los
// ejecuta en una transacción implícita cuando no hay una explícita abierta.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}
