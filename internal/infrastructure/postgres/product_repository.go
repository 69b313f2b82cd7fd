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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos terminados. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `code, name, category, base_batch_size, active, notes, created_at, updated_at`

// Create persiste un producto terminado nuevo.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (code, name, category, base_batch_size, active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.Code, p.Name, p.Category, p.BaseBatchSize, p.Active, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByCode obtiene un producto por código. Devuelve nil si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, code).Scan(
		&p.Code, &p.Name, &p.Category, &p.BaseBatchSize, &p.Active, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. No permite cambiar el código.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, base_batch_size = $4, active = $5, notes = $6, updated_at = $7
		WHERE code = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.Code, p.Name, p.Category, p.BaseBatchSize, p.Active, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos ordenados por código, con búsqueda por código o nombre.
func (r *ProductRepo) List(ctx context.Context, search string, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
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
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Code, &p.Name, &p.Category, &p.BaseBatchSize,
			&p.Active, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cuenta productos con los mismos filtros de List.
func (r *ProductRepo) Count(ctx context.Context, search string, onlyActive bool) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE 1=1`
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
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// Delete elimina un producto; las líneas de fórmula caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, code string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
