package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo de un material; sin fila responde el saldo cero.
func (r *BalanceRepo) Get(ctx context.Context, materialCode string) (*entity.MaterialBalance, error) {
	query := `
		SELECT material_code, qty_on_hand, total_value, updated_at
		FROM material_balances WHERE material_code = $1`
	var b entity.MaterialBalance
	err := r.q.QueryRow(ctx, query, materialCode).Scan(
		&b.MaterialCode, &b.QtyOnHand, &b.TotalValue, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.MaterialBalance{MaterialCode: materialCode, QtyOnHand: decimal.Zero, TotalValue: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate garantiza la fila del saldo y la bloquea (SELECT FOR UPDATE).
// El INSERT previo cierra la carrera del primer movimiento de un material:
// dos asientos concurrentes sin fila que bloquear serializarían mal.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, materialCode string) (*entity.MaterialBalance, error) {
	ensure := `
		INSERT INTO material_balances (material_code, qty_on_hand, total_value, updated_at)
		VALUES ($1, 0, 0, now())
		ON CONFLICT (material_code) DO NOTHING`
	if _, err := r.q.Exec(ctx, ensure, materialCode); err != nil {
		return nil, fmt.Errorf("ensure balance row: %w", err)
	}
	query := `
		SELECT material_code, qty_on_hand, total_value, updated_at
		FROM material_balances WHERE material_code = $1
		FOR UPDATE`
	var b entity.MaterialBalance
	err := r.q.QueryRow(ctx, query, materialCode).Scan(
		&b.MaterialCode, &b.QtyOnHand, &b.TotalValue, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Upsert escribe cantidad y valor absolutos calculados por el motor.
func (r *BalanceRepo) Upsert(ctx context.Context, balance *entity.MaterialBalance) error {
	query := `
		INSERT INTO material_balances (material_code, qty_on_hand, total_value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (material_code)
		DO UPDATE SET qty_on_hand = EXCLUDED.qty_on_hand, total_value = EXCLUDED.total_value, updated_at = now()`
	_, err := r.q.Exec(ctx, query, balance.MaterialCode, balance.QtyOnHand, balance.TotalValue)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// ListNegative devuelve saldos con cantidad por debajo de -epsilon.
func (r *BalanceRepo) ListNegative(ctx context.Context, epsilon decimal.Decimal) ([]*entity.MaterialBalance, error) {
	query := `
		SELECT material_code, qty_on_hand, total_value, updated_at
		FROM material_balances WHERE qty_on_hand < -$1
		ORDER BY material_code`
	rows, err := r.q.Query(ctx, query, epsilon)
	if err != nil {
		return nil, fmt.Errorf("list negative balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialBalance
	for rows.Next() {
		var b entity.MaterialBalance
		if err := rows.Scan(&b.MaterialCode, &b.QtyOnHand, &b.TotalValue, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan negative balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ListDrift compara el saldo mantenido contra el pliegue del libro. El FULL
// OUTER JOIN atrapa también materiales con asientos pero sin fila de saldo.
// El valor del libro se pliega con la misma convención del motor: cantidad
// despreciable implica valor cero.
func (r *BalanceRepo) ListDrift(ctx context.Context, epsilon decimal.Decimal) ([]repository.BalanceDriftResult, error) {
	query := `
		SELECT
			COALESCE(b.material_code, l.material_code) AS material_code,
			COALESCE(b.qty_on_hand, 0) AS qty_on_hand,
			COALESCE(l.qty, 0) AS ledger_qty,
			COALESCE(b.total_value, 0) AS total_value,
			CASE WHEN ABS(COALESCE(l.qty, 0)) < $1 THEN 0 ELSE COALESCE(l.value, 0) END AS ledger_value
		FROM material_balances b
		FULL OUTER JOIN (
			SELECT material_code, SUM(qty) AS qty, SUM(total_cost) AS value
			FROM stock_ledger
			GROUP BY material_code
		) l ON l.material_code = b.material_code
		WHERE ABS(COALESCE(b.qty_on_hand, 0) - COALESCE(l.qty, 0)) > $1
		   OR ABS(COALESCE(b.total_value, 0) - (CASE WHEN ABS(COALESCE(l.qty, 0)) < $1 THEN 0 ELSE COALESCE(l.value, 0) END)) > $1
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query, epsilon)
	if err != nil {
		return nil, fmt.Errorf("list balance drift: %w", err)
	}
	defer rows.Close()
	var list []repository.BalanceDriftResult
	for rows.Next() {
		var d repository.BalanceDriftResult
		if err := rows.Scan(&d.MaterialCode, &d.QtyOnHand, &d.LedgerQty, &d.TotalValue, &d.LedgerValue); err != nil {
			return nil, fmt.Errorf("scan balance drift: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
