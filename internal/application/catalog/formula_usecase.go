package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// FormulaUseCase administra las líneas de fórmula (BOM) de cada producto:
// qué materiales consume un lote estándar y en qué cantidad.
type FormulaUseCase struct {
	formulaRepo  repository.FormulaRepository
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
}

// NewFormulaUseCase construye el caso de uso.
func NewFormulaUseCase(
	formulaRepo repository.FormulaRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
) *FormulaUseCase {
	return &FormulaUseCase{
		formulaRepo:  formulaRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
	}
}

// Get devuelve la fórmula completa de un producto con los nombres de los
// materiales resueltos.
func (uc *FormulaUseCase) Get(ctx context.Context, productCode string) (*dto.FormulaResponse, error) {
	product, err := uc.productRepo.GetByCode(ctx, productCode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.formulaRepo.ListByProduct(ctx, productCode)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FormulaLineResponse, 0, len(lines))
	for _, line := range lines {
		name := ""
		if material, err := uc.materialRepo.GetByCode(ctx, line.MaterialCode); err == nil && material != nil {
			name = material.Name
		}
		out = append(out, dto.FormulaLineResponse{
			MaterialCode: line.MaterialCode,
			MaterialName: name,
			QtyPerBatch:  line.QtyPerBatch,
			UOM:          line.UOM,
		})
	}
	return &dto.FormulaResponse{
		ProductCode:   product.Code,
		ProductName:   product.Name,
		BaseBatchSize: product.BaseBatchSize,
		Lines:         out,
	}, nil
}

// AddLine agrega una línea a la fórmula. Máximo una línea por material: la
// repetida responde ErrDuplicate (la restricción única de la DB cierra la
// carrera entre el chequeo y el insert).
func (uc *FormulaUseCase) AddLine(ctx context.Context, productCode string, in dto.FormulaLineRequest) (*dto.FormulaLineResponse, error) {
	material, err := uc.validateLine(ctx, productCode, in)
	if err != nil {
		return nil, err
	}
	line := &entity.FormulaLine{
		ProductCode:  productCode,
		MaterialCode: in.MaterialCode,
		QtyPerBatch:  in.QtyPerBatch,
		UOM:          in.UOM,
	}
	if err := uc.formulaRepo.AddLine(ctx, line); err != nil {
		return nil, err
	}
	return &dto.FormulaLineResponse{
		MaterialCode: line.MaterialCode,
		MaterialName: material.Name,
		QtyPerBatch:  line.QtyPerBatch,
		UOM:          line.UOM,
	}, nil
}

// UpdateLine corrige cantidad o unidad de una línea existente.
func (uc *FormulaUseCase) UpdateLine(ctx context.Context, productCode string, in dto.FormulaLineRequest) (*dto.FormulaLineResponse, error) {
	material, err := uc.validateLine(ctx, productCode, in)
	if err != nil {
		return nil, err
	}
	line := &entity.FormulaLine{
		ProductCode:  productCode,
		MaterialCode: in.MaterialCode,
		QtyPerBatch:  in.QtyPerBatch,
		UOM:          in.UOM,
	}
	if err := uc.formulaRepo.UpdateLine(ctx, line); err != nil {
		return nil, err
	}
	return &dto.FormulaLineResponse{
		MaterialCode: line.MaterialCode,
		MaterialName: material.Name,
		QtyPerBatch:  line.QtyPerBatch,
		UOM:          line.UOM,
	}, nil
}

// Replace sustituye la fórmula completa de un producto de forma atómica.
// Valida todas las líneas antes de tocar nada y rechaza materiales repetidos.
func (uc *FormulaUseCase) Replace(ctx context.Context, productCode string, in []dto.FormulaLineRequest) (*dto.FormulaResponse, error) {
	seen := make(map[string]bool, len(in))
	lines := make([]*entity.FormulaLine, 0, len(in))
	for _, req := range in {
		if _, err := uc.validateLine(ctx, productCode, req); err != nil {
			return nil, err
		}
		if seen[req.MaterialCode] {
			return nil, domain.ErrDuplicate
		}
		seen[req.MaterialCode] = true
		lines = append(lines, &entity.FormulaLine{
			ProductCode:  productCode,
			MaterialCode: req.MaterialCode,
			QtyPerBatch:  req.QtyPerBatch,
			UOM:          req.UOM,
		})
	}
	if len(lines) == 0 {
		// Reemplazo vacío: el producto queda sin fórmula (misma ruta atómica).
		product, err := uc.productRepo.GetByCode(ctx, productCode)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}
	if err := uc.formulaRepo.ReplaceByProduct(ctx, productCode, lines); err != nil {
		return nil, err
	}
	return uc.Get(ctx, productCode)
}

// RemoveLine quita un material de la fórmula.
func (uc *FormulaUseCase) RemoveLine(ctx context.Context, productCode, materialCode string) error {
	return uc.formulaRepo.RemoveLine(ctx, productCode, materialCode)
}

// validateLine valida producto, material, cantidad positiva y que la unidad
// sea la de stock o la de salida del material.
func (uc *FormulaUseCase) validateLine(ctx context.Context, productCode string, in dto.FormulaLineRequest) (*entity.Material, error) {
	if in.MaterialCode == "" || !in.QtyPerBatch.GreaterThan(decimal.Zero) || in.UOM == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByCode(ctx, productCode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	material, err := uc.materialRepo.GetByCode(ctx, in.MaterialCode)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.UOM != material.StockUOM && in.UOM != material.IssueUOM {
		return nil, domain.ErrInvalidInput
	}
	return material, nil
}
