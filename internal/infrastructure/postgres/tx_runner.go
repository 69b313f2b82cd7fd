package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/AcroChem-api/internal/application/consumption"
	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
	"github.com/jhoicas/AcroChem-api/internal/application/stocktake"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner, consumption.TxRunner and stocktake.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ consumption.TxRunner = (*TxRunner)(nil)
var _ stocktake.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	entries repository.LedgerRepository,
	balances repository.BalanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entries := NewLedgerRepository(tx)
	balances := NewBalanceRepository(tx)

	if err := fn(entries, balances); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStocktake inicia una transacción con repos del libro y de conteos
// (para Reconcile: el registro del conteo y su varianza se confirman juntos).
func (r *TxRunner) RunStocktake(ctx context.Context, fn func(
	entries repository.LedgerRepository,
	balances repository.BalanceRepository,
	stocktakes repository.StocktakeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entries := NewLedgerRepository(tx)
	balances := NewBalanceRepository(tx)
	stocktakes := NewStocktakeRepository(tx)

	if err := fn(entries, balances, stocktakes); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
