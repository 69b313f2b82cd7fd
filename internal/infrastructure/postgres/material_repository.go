package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador del maestro de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `code, name, category, stock_uom, issue_uom, issue_to_stock_factor, std_wastage_pct, is_critical, active, notes, created_at, updated_at`

// Create persiste un material nuevo. El código es clave natural.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (code, name, category, stock_uom, issue_uom, issue_to_stock_factor, std_wastage_pct, is_critical, active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.Code, m.Name, m.Category, m.StockUOM, m.IssueUOM,
		m.IssueToStockFactor, m.StdWastagePct, m.IsCritical, m.Active, m.Notes,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByCode obtiene un material por código. Devuelve nil si no existe.
func (r *MaterialRepo) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE code = $1`
	var m entity.Material
	err := r.q.QueryRow(ctx, query, code).Scan(
		&m.Code, &m.Name, &m.Category, &m.StockUOM, &m.IssueUOM,
		&m.IssueToStockFactor, &m.StdWastagePct, &m.IsCritical, &m.Active, &m.Notes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// Update actualiza un material existente. No permite cambiar el código.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials
		SET name = $2, category = $3, stock_uom = $4, issue_uom = $5, issue_to_stock_factor = $6,
		    std_wastage_pct = $7, is_critical = $8, active = $9, notes = $10, updated_at = $11
		WHERE code = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.Code, m.Name, m.Category, m.StockUOM, m.IssueUOM, m.IssueToStockFactor,
		m.StdWastagePct, m.IsCritical, m.Active, m.Notes, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista materiales ordenados por código, con búsqueda por código o nombre.
func (r *MaterialRepo) List(ctx context.Context, search string, onlyActive bool, limit, offset int) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE 1=1`
	args := []any{}
	pos := 1
	if search != "" {
		query += fmt.Sprintf(" AND (code ILIKE $%d OR name ILIKE $%d)", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	if onlyActive {
		query += " AND active"
	}
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.Code, &m.Name, &m.Category, &m.StockUOM, &m.IssueUOM,
			&m.IssueToStockFactor, &m.StdWastagePct, &m.IsCritical, &m.Active, &m.Notes,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Count cuenta materiales con los mismos filtros de List.
func (r *MaterialRepo) Count(ctx context.Context, search string, onlyActive bool) (int, error) {
	query := `SELECT COUNT(*) FROM materials WHERE 1=1`
	args := []any{}
	if search != "" {
		query += " AND (code ILIKE $1 OR name ILIKE $1)"
		args = append(args, "%"+search+"%")
	}
	if onlyActive {
		query += " AND active"
	}
	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count materials: %w", err)
	}
	return count, nil
}

// Delete elimina un material por código. La FK desde formulas la convierte
// en conflicto referencial; la verificación contra el libro corre en el usecase.
func (r *MaterialRepo) Delete(ctx context.Context, code string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM materials WHERE code = $1`, code)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferentialConflict
		}
		return fmt.Errorf("delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
