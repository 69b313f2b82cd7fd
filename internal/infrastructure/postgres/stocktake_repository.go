package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

var _ repository.StocktakeRepository = (*StocktakeRepo)(nil)

// StocktakeRepo implementación de StocktakeRepository sobre PostgreSQL (usable con pool o tx).
// Los conteos son inmutables: solo INSERT y SELECT.
type StocktakeRepo struct {
	q Querier
}

// NewStocktakeRepository construye el adaptador de conteos físicos. Pasar pool o tx (Querier).
func NewStocktakeRepository(q Querier) *StocktakeRepo {
	return &StocktakeRepo{q: q}
}

// Create persiste el registro del conteo con la varianza ya calculada.
func (r *StocktakeRepo) Create(ctx context.Context, rec *entity.StocktakeRecord) error {
	query := `
		INSERT INTO stocktakes (id, count_date, material_code, counted_qty, system_qty, variance, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.CountDate, rec.MaterialCode, rec.CountedQty,
		rec.SystemQty, rec.Variance, rec.Note, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stocktake: %w", err)
	}
	return nil
}

// List devuelve conteos del más reciente al más antiguo.
func (r *StocktakeRepo) List(ctx context.Context, materialCode string, limit, offset int) ([]*entity.StocktakeRecord, error) {
	query := `
		SELECT id, count_date, material_code, counted_qty, system_qty, variance, note, created_at
		FROM stocktakes WHERE 1=1`
	args := []any{}
	pos := 1
	if materialCode != "" {
		query += fmt.Sprintf(" AND material_code = $%d", pos)
		args = append(args, materialCode)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stocktakes: %w", err)
	}
	defer rows.Close()
	var list []*entity.StocktakeRecord
	for rows.Next() {
		var rec entity.StocktakeRecord
		if err := rows.Scan(&rec.ID, &rec.CountDate, &rec.MaterialCode, &rec.CountedQty,
			&rec.SystemQty, &rec.Variance, &rec.Note, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stocktake: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Count cuenta registros de conteo con el mismo filtro de List.
func (r *StocktakeRepo) Count(ctx context.Context, materialCode string) (int, error) {
	query := `SELECT COUNT(*) FROM stocktakes WHERE 1=1`
	args := []any{}
	if materialCode != "" {
		query += " AND material_code = $1"
		args = append(args, materialCode)
	}
	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stocktakes: %w", err)
	}
	return count, nil
}
