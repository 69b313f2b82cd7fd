package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// MaterialUseCase casos de uso CRUD para el maestro de materias primas.
// El saldo y el costo promedio nunca se tocan aquí: viven en el libro.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
	ledgerRepo   repository.LedgerRepository
	formulaRepo  repository.FormulaRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	materialRepo repository.MaterialRepository,
	ledgerRepo repository.LedgerRepository,
	formulaRepo repository.FormulaRepository,
) *MaterialUseCase {
	return &MaterialUseCase{
		materialRepo: materialRepo,
		ledgerRepo:   ledgerRepo,
		formulaRepo:  formulaRepo,
	}
}

// Create crea un material. El factor de conversión en cero toma 1 por
// defecto y la unidad de salida vacía toma la unidad de stock.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Code == "" || in.Name == "" || in.StockUOM == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	factor := in.IssueToStockFactor
	if factor.IsZero() {
		factor = decimal.NewFromInt(1)
	}
	if !factor.GreaterThan(decimal.Zero) || in.StdWastagePct.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	issueUOM := in.IssueUOM
	if issueUOM == "" {
		issueUOM = in.StockUOM
	}
	existing, err := uc.materialRepo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	material := &entity.Material{
		Code:               in.Code,
		Name:               in.Name,
		Category:           in.Category,
		StockUOM:           in.StockUOM,
		IssueUOM:           issueUOM,
		IssueToStockFactor: factor,
		StdWastagePct:      in.StdWastagePct,
		IsCritical:         in.IsCritical,
		Active:             true,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByCode obtiene un material por código.
func (uc *MaterialUseCase) GetByCode(ctx context.Context, code string) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(material), nil
}

// Update actualiza un material. El código es inmutable; desactivar es la
// alternativa al borrado cuando hay movimientos o fórmulas que lo referencian.
func (uc *MaterialUseCase) Update(ctx context.Context, code string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		material.Name = *in.Name
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, domain.ErrInvalidInput
		}
		material.Category = *in.Category
	}
	if in.StockUOM != nil {
		if *in.StockUOM == "" {
			return nil, domain.ErrInvalidInput
		}
		material.StockUOM = *in.StockUOM
	}
	if in.IssueUOM != nil {
		material.IssueUOM = *in.IssueUOM
	}
	if in.IssueToStockFactor != nil {
		if !in.IssueToStockFactor.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		material.IssueToStockFactor = *in.IssueToStockFactor
	}
	if in.StdWastagePct != nil {
		if in.StdWastagePct.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		material.StdWastagePct = *in.StdWastagePct
	}
	if in.IsCritical != nil {
		material.IsCritical = *in.IsCritical
	}
	if in.Active != nil {
		material.Active = *in.Active
	}
	if in.Notes != nil {
		material.Notes = *in.Notes
	}
	material.UpdatedAt = time.Now()
	if err := uc.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// List lista materiales con búsqueda y paginación.
func (uc *MaterialUseCase) List(ctx context.Context, search string, onlyActive bool, page dto.PageRequest) (*dto.MaterialListResponse, error) {
	page.DefaultPage()
	list, err := uc.materialRepo.List(ctx, search, onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.materialRepo.Count(ctx, search, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un material solo si nada lo referencia: cualquier asiento
// del libro o línea de fórmula lo veta con ErrReferentialConflict.
func (uc *MaterialUseCase) Delete(ctx context.Context, code string) error {
	material, err := uc.materialRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	movements, err := uc.ledgerRepo.CountByMaterial(ctx, code)
	if err != nil {
		return err
	}
	if movements > 0 {
		return domain.ErrReferentialConflict
	}
	references, err := uc.formulaRepo.CountByMaterial(ctx, code)
	if err != nil {
		return err
	}
	if references > 0 {
		return domain.ErrReferentialConflict
	}
	return uc.materialRepo.Delete(ctx, code)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		Code:               m.Code,
		Name:               m.Name,
		Category:           m.Category,
		StockUOM:           m.StockUOM,
		IssueUOM:           m.IssueUOM,
		IssueToStockFactor: m.IssueToStockFactor,
		StdWastagePct:      m.StdWastagePct,
		IsCritical:         m.IsCritical,
		Active:             m.Active,
		Notes:              m.Notes,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
