package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AcroChem-api/internal/application/catalog"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la fórmula (BOM): una línea por material, unidad restringida a las
// del material y reemplazo completo que valida todo antes de tocar nada.
// ──────────────────────────────────────────────────────────────────────────────

func newFormulaEnv(t *testing.T) (*memory.Store, *catalog.FormulaUseCase) {
	t.Helper()
	store := memory.NewStore()
	uc := catalog.NewFormulaUseCase(store.Formulas(), store.Products(), store.Materials())
	ctx := context.Background()

	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		Code:          "PIN-BLA01",
		Name:          "Pintura acrílica blanca",
		Category:      "PAINT",
		BaseBatchSize: dec("100"),
		Active:        true,
	}))
	require.NoError(t, store.Materials().Create(ctx, &entity.Material{
		Code:               "RES-ACR01",
		Name:               "Resina acrílica",
		Category:           entity.CategoryResin,
		StockUOM:           "KG",
		IssueUOM:           "KG",
		IssueToStockFactor: dec("1"),
		Active:             true,
	}))
	require.NoError(t, store.Materials().Create(ctx, &entity.Material{
		Code:               "ADI-DIS01",
		Name:               "Dispersante",
		Category:           entity.CategoryAdditive,
		StockUOM:           "KG",
		IssueUOM:           "G",
		IssueToStockFactor: dec("0.001"),
		Active:             true,
	}))
	return store, uc
}

func TestFormulaGet_ResuelveNombresDeMateriales(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "RES-ACR01", QtyPerBatch: dec("40"), UOM: "KG",
	})
	require.NoError(t, err)
	_, err = uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "ADI-DIS01", QtyPerBatch: dec("800"), UOM: "G",
	})
	require.NoError(t, err)

	formula, err := uc.Get(ctx, "PIN-BLA01")
	require.NoError(t, err)
	assert.Equal(t, "PIN-BLA01", formula.ProductCode)
	assert.Equal(t, "Pintura acrílica blanca", formula.ProductName)
	assert.True(t, dec("100").Equal(formula.BaseBatchSize))

	// Ordenadas por código de material y con el nombre resuelto.
	require.Len(t, formula.Lines, 2)
	assert.Equal(t, "ADI-DIS01", formula.Lines[0].MaterialCode)
	assert.Equal(t, "Dispersante", formula.Lines[0].MaterialName)
	assert.Equal(t, "G", formula.Lines[0].UOM)
	assert.Equal(t, "RES-ACR01", formula.Lines[1].MaterialCode)
	assert.True(t, dec("40").Equal(formula.Lines[1].QtyPerBatch))
}

func TestFormulaGet_ProductoInexistente(t *testing.T) {
	_, uc := newFormulaEnv(t)

	_, err := uc.Get(context.Background(), "NO-EXISTE")
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestFormulaAddLine_ValidaLaUnidadDelMaterial(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	// La unidad de salida del dispersante es G; KG (stock) también vale.
	line, err := uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "ADI-DIS01", QtyPerBatch: dec("800"), UOM: "G",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dispersante", line.MaterialName)

	_, err = uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "RES-ACR01", QtyPerBatch: dec("40"), UOM: "L",
	})
	assert.Equal(t, domain.ErrInvalidInput, err)
}

func TestFormulaAddLine_Invalidos(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.FormulaLineRequest
		want error
	}{
		{"sin material", dto.FormulaLineRequest{QtyPerBatch: dec("10"), UOM: "KG"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.FormulaLineRequest{MaterialCode: "RES-ACR01", QtyPerBatch: dec("0"), UOM: "KG"}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.FormulaLineRequest{MaterialCode: "RES-ACR01", QtyPerBatch: dec("-5"), UOM: "KG"}, domain.ErrInvalidInput},
		{"sin unidad", dto.FormulaLineRequest{MaterialCode: "RES-ACR01", QtyPerBatch: dec("10")}, domain.ErrInvalidInput},
		{"material inexistente", dto.FormulaLineRequest{MaterialCode: "NO-EXISTE", QtyPerBatch: dec("10"), UOM: "KG"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AddLine(ctx, "PIN-BLA01", tc.in)
			assert.Equal(t, tc.want, err)
		})
	}

	_, err := uc.AddLine(ctx, "NO-EXISTE", dto.FormulaLineRequest{
		MaterialCode: "RES-ACR01", QtyPerBatch: dec("10"), UOM: "KG",
	})
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestFormulaAddLine_MaterialRepetido(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	in := dto.FormulaLineRequest{MaterialCode: "RES-ACR01", QtyPerBatch: dec("40"), UOM: "KG"}
	_, err := uc.AddLine(ctx, "PIN-BLA01", in)
	require.NoError(t, err)

	_, err = uc.AddLine(ctx, "PIN-BLA01", in)
	assert.Equal(t, domain.ErrDuplicate, err)
}

func TestFormulaUpdateLine_CorrigeCantidadYUnidad(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "ADI-DIS01", QtyPerBatch: dec("800"), UOM: "G",
	})
	require.NoError(t, err)

	line, err := uc.UpdateLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "ADI-DIS01", QtyPerBatch: dec("0.9"), UOM: "KG",
	})
	require.NoError(t, err)
	assert.True(t, dec("0.9").Equal(line.QtyPerBatch))
	assert.Equal(t, "KG", line.UOM)

	formula, err := uc.Get(ctx, "PIN-BLA01")
	require.NoError(t, err)
	require.Len(t, formula.Lines, 1)
	assert.Equal(t, "KG", formula.Lines[0].UOM)
}

func TestFormulaUpdateLine_LineaInexistente(t *testing.T) {
	_, uc := newFormulaEnv(t)

	// Material válido pero sin línea en la fórmula.
	_, err := uc.UpdateLine(context.Background(), "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "RES-ACR01", QtyPerBatch: dec("40"), UOM: "KG",
	})
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestFormulaRemoveLine(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "RES-ACR01", QtyPerBatch: dec("40"), UOM: "KG",
	})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveLine(ctx, "PIN-BLA01", "RES-ACR01"))

	formula, err := uc.Get(ctx, "PIN-BLA01")
	require.NoError(t, err)
	assert.Empty(t, formula.Lines)

	err = uc.RemoveLine(ctx, "PIN-BLA01", "RES-ACR01")
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestFormulaReplace_SustituyeTodaLaFormula(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "RES-ACR01", QtyPerBatch: dec("40"), UOM: "KG",
	})
	require.NoError(t, err)

	formula, err := uc.Replace(ctx, "PIN-BLA01", []dto.FormulaLineRequest{
		{MaterialCode: "ADI-DIS01", QtyPerBatch: dec("650"), UOM: "G"},
	})
	require.NoError(t, err)
	require.Len(t, formula.Lines, 1)
	assert.Equal(t, "ADI-DIS01", formula.Lines[0].MaterialCode)
	assert.True(t, dec("650").Equal(formula.Lines[0].QtyPerBatch))
}

func TestFormulaReplace_MaterialRepetidoEnElPayload(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "RES-ACR01", QtyPerBatch: dec("40"), UOM: "KG",
	})
	require.NoError(t, err)

	_, err = uc.Replace(ctx, "PIN-BLA01", []dto.FormulaLineRequest{
		{MaterialCode: "ADI-DIS01", QtyPerBatch: dec("650"), UOM: "G"},
		{MaterialCode: "ADI-DIS01", QtyPerBatch: dec("700"), UOM: "G"},
	})
	assert.Equal(t, domain.ErrDuplicate, err)

	// La fórmula original sigue intacta.
	formula, err := uc.Get(ctx, "PIN-BLA01")
	require.NoError(t, err)
	require.Len(t, formula.Lines, 1)
	assert.Equal(t, "RES-ACR01", formula.Lines[0].MaterialCode)
}

func TestFormulaReplace_LineaInvalidaNoTocaNada(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "RES-ACR01", QtyPerBatch: dec("40"), UOM: "KG",
	})
	require.NoError(t, err)

	_, err = uc.Replace(ctx, "PIN-BLA01", []dto.FormulaLineRequest{
		{MaterialCode: "ADI-DIS01", QtyPerBatch: dec("650"), UOM: "G"},
		{MaterialCode: "NO-EXISTE", QtyPerBatch: dec("10"), UOM: "KG"},
	})
	assert.Equal(t, domain.ErrNotFound, err)

	formula, err := uc.Get(ctx, "PIN-BLA01")
	require.NoError(t, err)
	require.Len(t, formula.Lines, 1)
	assert.Equal(t, "RES-ACR01", formula.Lines[0].MaterialCode)
}

func TestFormulaReplace_VacioDejaElProductoSinFormula(t *testing.T) {
	_, uc := newFormulaEnv(t)
	ctx := context.Background()

	_, err := uc.AddLine(ctx, "PIN-BLA01", dto.FormulaLineRequest{
		MaterialCode: "RES-ACR01", QtyPerBatch: dec("40"), UOM: "KG",
	})
	require.NoError(t, err)

	formula, err := uc.Replace(ctx, "PIN-BLA01", nil)
	require.NoError(t, err)
	assert.Empty(t, formula.Lines)

	_, err = uc.Replace(ctx, "NO-EXISTE", nil)
	assert.Equal(t, domain.ErrNotFound, err)
}
