package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/AcroChem-api/internal/domain/costing"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación read-only de ReportRepository sobre PostgreSQL.
// Lee los saldos mantenidos (material_balances), no el libro completo.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockOnHand devuelve materiales con saldo no despreciable, con el costo
// promedio derivado del saldo (valor/cantidad, 0 si la cantidad es 0).
func (r *ReportRepo) StockOnHand(ctx context.Context, search string) ([]repository.StockOnHandResult, error) {
	query := `
		SELECT m.code, m.name, m.category, m.stock_uom, m.is_critical,
		       b.qty_on_hand,
		       CASE WHEN b.qty_on_hand != 0
		            THEN b.total_value / b.qty_on_hand
		            ELSE 0 END AS avg_cost,
		       b.total_value
		FROM material_balances b
		JOIN materials m ON m.code = b.material_code
		WHERE ABS(b.qty_on_hand) > $1`
	args := []any{costing.QtyEpsilon}
	if search != "" {
		query += " AND (m.code ILIKE $2 OR m.name ILIKE $2)"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY m.code"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock on hand: %w", err)
	}
	defer rows.Close()
	var list []repository.StockOnHandResult
	for rows.Next() {
		var res repository.StockOnHandResult
		if err := rows.Scan(&res.MaterialCode, &res.Name, &res.Category, &res.StockUOM,
			&res.IsCritical, &res.QtyOnHand, &res.AvgCost, &res.TotalValue); err != nil {
			return nil, fmt.Errorf("scan stock on hand: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// ValuationByCategory agrupa el valor de las existencias por categoría,
// de mayor a menor valor.
func (r *ReportRepo) ValuationByCategory(ctx context.Context) ([]repository.CategoryValuationResult, error) {
	query := `
		SELECT m.category, COUNT(*) AS material_count, COALESCE(SUM(b.total_value), 0) AS total_value
		FROM material_balances b
		JOIN materials m ON m.code = b.material_code
		WHERE ABS(b.qty_on_hand) > $1
		GROUP BY m.category
		ORDER BY total_value DESC`
	rows, err := r.q.Query(ctx, query, costing.QtyEpsilon)
	if err != nil {
		return nil, fmt.Errorf("valuation by category: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryValuationResult
	for rows.Next() {
		var res repository.CategoryValuationResult
		if err := rows.Scan(&res.Category, &res.MaterialCount, &res.TotalValue); err != nil {
			return nil, fmt.Errorf("scan valuation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// CountCriticalShortages cuenta materiales críticos con saldo <= 0.
func (r *ReportRepo) CountCriticalShortages(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM materials m
		LEFT JOIN material_balances b ON b.material_code = m.code
		WHERE m.is_critical AND COALESCE(b.qty_on_hand, 0) <= 0`
	var count int
	if err := r.q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count critical shortages: %w", err)
	}
	return count, nil
}
