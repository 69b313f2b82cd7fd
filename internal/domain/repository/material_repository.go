package repository

import (
	"context"

	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para el maestro de
// materias primas. El código es la clave natural y nunca cambia.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByCode(ctx context.Context, code string) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	// List devuelve materiales ordenados por código. Con onlyActive filtra
	// los desactivados; search busca por código o nombre (ILIKE).
	List(ctx context.Context, search string, onlyActive bool, limit, offset int) ([]*entity.Material, error)
	Count(ctx context.Context, search string, onlyActive bool) (int, error)
	Delete(ctx context.Context, code string) error
}
