package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AcroChem-api/internal/application/catalog"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/infrastructure/memory"
)

func newProductEnv(t *testing.T) (*memory.Store, *catalog.ProductUseCase) {
	t.Helper()
	store := memory.NewStore()
	return store, catalog.NewProductUseCase(store.Products())
}

func TestProductCreate_LoteEstandarObligatorio(t *testing.T) {
	_, uc := newProductEnv(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateProductRequest{
		Code:          "PIN-BLA01",
		Name:          "Pintura acrílica blanca",
		Category:      "PAINT",
		BaseBatchSize: dec("100"),
	})
	require.NoError(t, err)
	assert.True(t, out.Active)
	assert.True(t, dec("100").Equal(out.BaseBatchSize))

	// El costeo por unidad divide entre el lote: cero o negativo no sirven.
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "THN-01", Name: "Thinner", BaseBatchSize: decimal.Zero})
	assert.Equal(t, domain.ErrInvalidInput, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "", Name: "Thinner", BaseBatchSize: dec("200")})
	assert.Equal(t, domain.ErrInvalidInput, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "THN-01", Name: "", BaseBatchSize: dec("200")})
	assert.Equal(t, domain.ErrInvalidInput, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "PIN-BLA01", Name: "Otra", BaseBatchSize: dec("50")})
	assert.Equal(t, domain.ErrDuplicate, err)
}

func TestProductGetByCode_Inexistente(t *testing.T) {
	_, uc := newProductEnv(t)

	_, err := uc.GetByCode(context.Background(), "NO-EXISTE")
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestProductUpdate_ParcheYValidaciones(t *testing.T) {
	_, uc := newProductEnv(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		Code: "THN-EST01", Name: "Thinner estándar", BaseBatchSize: dec("200"),
	})
	require.NoError(t, err)

	batch := dec("250")
	active := false
	out, err := uc.Update(ctx, "THN-EST01", dto.UpdateProductRequest{
		BaseBatchSize: &batch,
		Active:        &active,
	})
	require.NoError(t, err)
	assert.True(t, dec("250").Equal(out.BaseBatchSize))
	assert.False(t, out.Active)
	assert.Equal(t, "Thinner estándar", out.Name)

	empty := ""
	_, err = uc.Update(ctx, "THN-EST01", dto.UpdateProductRequest{Name: &empty})
	assert.Equal(t, domain.ErrInvalidInput, err)

	zero := decimal.Zero
	_, err = uc.Update(ctx, "THN-EST01", dto.UpdateProductRequest{BaseBatchSize: &zero})
	assert.Equal(t, domain.ErrInvalidInput, err)

	_, err = uc.Update(ctx, "NO-EXISTE", dto.UpdateProductRequest{})
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestProductDelete_ArrastraSusLineasDeFormula(t *testing.T) {
	store, uc := newProductEnv(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		Code: "PIN-BLA01", Name: "Pintura blanca", BaseBatchSize: dec("100"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Formulas().AddLine(ctx, &entity.FormulaLine{
		ProductCode:  "PIN-BLA01",
		MaterialCode: "RES-ACR01",
		QtyPerBatch:  dec("40"),
		UOM:          "KG",
	}))

	require.NoError(t, uc.Delete(ctx, "PIN-BLA01"))

	// La cascada limpia la fórmula; el libro no referencia productos.
	lines, err := store.Formulas().ListByProduct(ctx, "PIN-BLA01")
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.Equal(t, domain.ErrNotFound, uc.Delete(ctx, "PIN-BLA01"))
}

func TestProductList_BusquedaYSoloActivos(t *testing.T) {
	_, uc := newProductEnv(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "PIN-BLA01", Name: "Pintura blanca", BaseBatchSize: dec("100")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "THN-EST01", Name: "Thinner estándar", BaseBatchSize: dec("200")})
	require.NoError(t, err)
	active := false
	_, err = uc.Update(ctx, "THN-EST01", dto.UpdateProductRequest{Active: &active})
	require.NoError(t, err)

	list, err := uc.List(ctx, "pintura", false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "PIN-BLA01", list.Items[0].Code)

	list, err = uc.List(ctx, "", true, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}
