package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL (usable con pool o tx).
// El libro es append-only: aquí no existen UPDATE ni DELETE.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create inserta el asiento y rellena ID y CreatedAt generados por la DB.
func (r *LedgerRepo) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (entry_date, kind, ref_type, ref_no, material_code, qty, unit_cost, total_cost, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		entry.EntryDate, entry.Kind, entry.RefType, entry.RefNo,
		entry.MaterialCode, entry.Qty, entry.UnitCost, entry.TotalCost, entry.Note,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// List devuelve asientos del más reciente al más antiguo; materialCode y
// kind vacíos no filtran.
func (r *LedgerRepo) List(ctx context.Context, materialCode, kind string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, entry_date, kind, ref_type, ref_no, material_code, qty, unit_cost, total_cost, note, created_at
		FROM stock_ledger WHERE 1=1`
	args := []any{}
	pos := 1
	if materialCode != "" {
		query += fmt.Sprintf(" AND material_code = $%d", pos)
		args = append(args, materialCode)
		pos++
	}
	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, kind)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.Kind, &e.RefType, &e.RefNo,
			&e.MaterialCode, &e.Qty, &e.UnitCost, &e.TotalCost, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Count cuenta asientos con los mismos filtros de List.
func (r *LedgerRepo) Count(ctx context.Context, materialCode, kind string) (int, error) {
	query := `SELECT COUNT(*) FROM stock_ledger WHERE 1=1`
	args := []any{}
	pos := 1
	if materialCode != "" {
		query += fmt.Sprintf(" AND material_code = $%d", pos)
		args = append(args, materialCode)
		pos++
	}
	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, kind)
	}
	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count ledger: %w", err)
	}
	return count, nil
}

// CountByMaterial cuenta los asientos de un material.
func (r *LedgerRepo) CountByMaterial(ctx context.Context, materialCode string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_ledger WHERE material_code = $1`, materialCode,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count ledger by material: %w", err)
	}
	return count, nil
}

// SumByMaterial pliega el libro de un material: SUM(qty) y SUM(total_cost).
func (r *LedgerRepo) SumByMaterial(ctx context.Context, materialCode string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(qty), 0), COALESCE(SUM(total_cost), 0)
		FROM stock_ledger WHERE material_code = $1`
	var qty, value decimal.Decimal
	if err := r.q.QueryRow(ctx, query, materialCode).Scan(&qty, &value); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum ledger by material: %w", err)
	}
	return qty, value, nil
}
