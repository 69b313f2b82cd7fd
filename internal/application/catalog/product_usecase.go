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

// ProductUseCase casos de uso CRUD para productos terminados.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create crea un producto. BaseBatchSize define el lote estándar y debe ser
// positivo: el costeo por unidad divide entre él.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" || !in.BaseBatchSize.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		Code:          in.Code,
		Name:          in.Name,
		Category:      in.Category,
		BaseBatchSize: in.BaseBatchSize,
		Active:        true,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por código.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto (el código es inmutable).
func (uc *ProductUseCase) Update(ctx context.Context, code string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.BaseBatchSize != nil {
		if !in.BaseBatchSize.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.BaseBatchSize = *in.BaseBatchSize
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.Notes != nil {
		product.Notes = *in.Notes
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda y paginación.
func (uc *ProductUseCase) List(ctx context.Context, search string, onlyActive bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.List(ctx, search, onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count(ctx, search, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina el producto junto con sus líneas de fórmula (cascada).
// Los consumos ya asentados referencian materiales, no productos, así que
// el historial del libro queda intacto.
func (uc *ProductUseCase) Delete(ctx context.Context, code string) error {
	product, err := uc.productRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(ctx, code)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		Code:          p.Code,
		Name:          p.Name,
		Category:      p.Category,
		BaseBatchSize: p.BaseBatchSize,
		Active:        p.Active,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
