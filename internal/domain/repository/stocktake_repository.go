package repository

import (
	"context"

	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
)

// StocktakeRepository define el puerto para los registros de conteo físico.
// Como el libro, son inmutables: solo alta y consulta.
type StocktakeRepository interface {
	Create(ctx context.Context, record *entity.StocktakeRecord) error
	// List devuelve conteos del más reciente al más antiguo; materialCode
	// vacío no filtra.
	List(ctx context.Context, materialCode string, limit, offset int) ([]*entity.StocktakeRecord, error)
	Count(ctx context.Context, materialCode string) (int, error)
}
