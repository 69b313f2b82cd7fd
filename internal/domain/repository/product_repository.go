package repository

import (
	"context"

	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos terminados.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, search string, onlyActive bool, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context, search string, onlyActive bool) (int, error)
	// Delete elimina el producto y, por cascada, sus líneas de fórmula.
	Delete(ctx context.Context, code string) error
}
