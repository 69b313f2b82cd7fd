package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

var _ repository.FormulaRepository = (*FormulaRepo)(nil)

// FormulaRepo implementación de FormulaRepository sobre PostgreSQL (usable con pool o tx).
type FormulaRepo struct {
	q Querier
}

// NewFormulaRepository construye el adaptador de líneas de fórmula. Pasar pool o tx (Querier).
func NewFormulaRepository(q Querier) *FormulaRepo {
	return &FormulaRepo{q: q}
}

// AddLine inserta una línea de fórmula. El par producto-material es único.
func (r *FormulaRepo) AddLine(ctx context.Context, line *entity.FormulaLine) error {
	query := `
		INSERT INTO formulas (product_code, material_code, qty_per_batch, uom)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, line.ProductCode, line.MaterialCode, line.QtyPerBatch, line.UOM)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert formula line: %w", err)
	}
	return nil
}

// UpdateLine actualiza cantidad y unidad de una línea existente.
func (r *FormulaRepo) UpdateLine(ctx context.Context, line *entity.FormulaLine) error {
	query := `
		UPDATE formulas SET qty_per_batch = $3, uom = $4
		WHERE product_code = $1 AND material_code = $2`
	cmd, err := r.q.Exec(ctx, query, line.ProductCode, line.MaterialCode, line.QtyPerBatch, line.UOM)
	if err != nil {
		return fmt.Errorf("update formula line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceByProduct reemplaza la fórmula completa: DELETE más los INSERT van
// en un solo batch (un round trip, transacción implícita del protocolo), así
// la fórmula nunca queda a medias.
func (r *FormulaRepo) ReplaceByProduct(ctx context.Context, productCode string, lines []*entity.FormulaLine) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM formulas WHERE product_code = $1`, productCode)
	for _, line := range lines {
		batch.Queue(
			`INSERT INTO formulas (product_code, material_code, qty_per_batch, uom) VALUES ($1, $2, $3, $4)`,
			productCode, line.MaterialCode, line.QtyPerBatch, line.UOM,
		)
	}
	results := r.q.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("replace formula: %w", err)
		}
	}
	return nil
}

// RemoveLine elimina la línea del par producto-material.
func (r *FormulaRepo) RemoveLine(ctx context.Context, productCode, materialCode string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM formulas WHERE product_code = $1 AND material_code = $2`,
		productCode, materialCode,
	)
	if err != nil {
		return fmt.Errorf("delete formula line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByProduct devuelve las líneas de la fórmula ordenadas por material.
func (r *FormulaRepo) ListByProduct(ctx context.Context, productCode string) ([]*entity.FormulaLine, error) {
	query := `
		SELECT product_code, material_code, qty_per_batch, uom
		FROM formulas WHERE product_code = $1 ORDER BY material_code`
	rows, err := r.q.Query(ctx, query, productCode)
	if err != nil {
		return nil, fmt.Errorf("list formula lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.FormulaLine
	for rows.Next() {
		var l entity.FormulaLine
		if err := rows.Scan(&l.ProductCode, &l.MaterialCode, &l.QtyPerBatch, &l.UOM); err != nil {
			return nil, fmt.Errorf("scan formula line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// CountByMaterial cuenta las fórmulas que referencian un material.
func (r *FormulaRepo) CountByMaterial(ctx context.Context, materialCode string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM formulas WHERE material_code = $1`, materialCode,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count formulas by material: %w", err)
	}
	return count, nil
}
