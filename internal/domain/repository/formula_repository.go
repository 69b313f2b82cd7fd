package repository

import (
	"context"

	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
)

// FormulaRepository define el puerto para las líneas de fórmula (BOM).
// La clave es el par producto-material: un material aparece a lo sumo una
// vez por fórmula.
type FormulaRepository interface {
	AddLine(ctx context.Context, line *entity.FormulaLine) error
	UpdateLine(ctx context.Context, line *entity.FormulaLine) error
	RemoveLine(ctx context.Context, productCode, materialCode string) error
	// ReplaceByProduct reemplaza la fórmula completa de un producto de forma
	// atómica: borra las líneas vigentes e inserta las nuevas.
	ReplaceByProduct(ctx context.Context, productCode string, lines []*entity.FormulaLine) error
	ListByProduct(ctx context.Context, productCode string) ([]*entity.FormulaLine, error)
	// CountByMaterial cuenta en cuántas fórmulas participa un material
	// (para vetar el borrado de materiales referenciados).
	CountByMaterial(ctx context.Context, materialCode string) (int, error)
}
