package stocktake_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
	"github.com/jhoicas/AcroChem-api/internal/application/stocktake"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de conciliación de conteos físicos. La varianza es counted - system,
// se asienta al promedio vigente y un reconteo inmediato no genera asiento.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newEnv(t *testing.T) (*memory.Store, *ledger.PostingUseCase, *stocktake.UseCase) {
	t.Helper()
	store := memory.NewStore()
	posting := ledger.NewPostingUseCase(store, store.Materials(), ledger.NopMetrics{})
	uc := stocktake.NewUseCase(store, posting, store.Materials(), store.Stocktakes(), ledger.NopMetrics{})

	err := store.Materials().Create(context.Background(), &entity.Material{
		Code: "PIG-RED", Name: "Pigmento rojo", Category: entity.CategoryPigment,
		StockUOM: "KG", IssueUOM: "KG", IssueToStockFactor: dec("1"), Active: true,
	})
	require.NoError(t, err)
	return store, posting, uc
}

func TestReconcile_FaltanteAsientaVarianzaNegativa(t *testing.T) {
	store, posting, uc := newEnv(t)
	ctx := context.Background()

	_, err := posting.Receive(ctx, dto.PostPurchaseRequest{MaterialCode: "PIG-RED", Qty: dec("50"), TotalCost: dec("250")})
	require.NoError(t, err)

	out, err := uc.Reconcile(ctx, dto.PostStocktakeRequest{
		MaterialCode: "PIG-RED",
		CountedQty:   dec("45"),
		Note:         "conteo mensual",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.True(t, dec("50").Equal(out.SystemQty), "la foto del sistema se toma bajo bloqueo")
	assert.True(t, dec("-5").Equal(out.Variance))
	require.NotNil(t, out.EntryID, "varianza no despreciable genera asiento")

	// El asiento sale al promedio vigente (5.00)
	entries, err := store.Ledger().List(ctx, "PIG-RED", entity.EntryKindStocktake, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, dec("-5").Equal(entries[0].Qty))
	assert.True(t, dec("5").Equal(entries[0].UnitCost))
	assert.True(t, dec("-25").Equal(entries[0].TotalCost))
	assert.Equal(t, out.ID, entries[0].RefNo, "el asiento referencia al conteo")

	// Y el saldo aterriza en lo contado
	bal, err := store.Balances().Get(ctx, "PIG-RED")
	require.NoError(t, err)
	assert.True(t, dec("45").Equal(bal.QtyOnHand))
	assert.True(t, dec("225").Equal(bal.TotalValue))
}

func TestReconcile_SobranteAsientaVarianzaPositiva(t *testing.T) {
	store, posting, uc := newEnv(t)
	ctx := context.Background()

	_, err := posting.Receive(ctx, dto.PostPurchaseRequest{MaterialCode: "PIG-RED", Qty: dec("50"), TotalCost: dec("250")})
	require.NoError(t, err)

	out, err := uc.Reconcile(ctx, dto.PostStocktakeRequest{MaterialCode: "PIG-RED", CountedQty: dec("52")})
	require.NoError(t, err)
	assert.True(t, dec("2").Equal(out.Variance))

	// El sobrante también entra al promedio vigente, no a costo de compra
	entries, err := store.Ledger().List(ctx, "PIG-RED", entity.EntryKindStocktake, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, dec("5").Equal(entries[0].UnitCost))
	assert.True(t, dec("10").Equal(entries[0].TotalCost))

	bal, _ := store.Balances().Get(ctx, "PIG-RED")
	assert.True(t, dec("52").Equal(bal.QtyOnHand))
	assert.True(t, dec("260").Equal(bal.TotalValue))
}

func TestReconcile_ReconteoInmediato_NoGeneraAsiento(t *testing.T) {
	store, posting, uc := newEnv(t)
	ctx := context.Background()

	_, err := posting.Receive(ctx, dto.PostPurchaseRequest{MaterialCode: "PIG-RED", Qty: dec("50"), TotalCost: dec("250")})
	require.NoError(t, err)

	first, err := uc.Reconcile(ctx, dto.PostStocktakeRequest{MaterialCode: "PIG-RED", CountedQty: dec("45")})
	require.NoError(t, err)
	require.NotNil(t, first.EntryID)

	// Recontar la misma cifra: varianza cero, sin asiento
	second, err := uc.Reconcile(ctx, dto.PostStocktakeRequest{MaterialCode: "PIG-RED", CountedQty: dec("45")})
	require.NoError(t, err)
	assert.True(t, second.Variance.IsZero())
	assert.Nil(t, second.EntryID, "varianza despreciable no asienta nada")

	// El conteo sí queda en el historial aunque no haya asiento
	records, err := uc.ListRecords(ctx, "PIG-RED", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, records.Items, 2)
	assert.Equal(t, 2, records.Page.Total)

	count, err := store.Ledger().Count(ctx, "PIG-RED", entity.EntryKindStocktake)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReconcile_ConteoSobreMaterialVacio(t *testing.T) {
	store, _, uc := newEnv(t)
	ctx := context.Background()

	// Sin movimientos previos: el sistema está en 0 y el conteo encuentra 12
	out, err := uc.Reconcile(ctx, dto.PostStocktakeRequest{MaterialCode: "PIG-RED", CountedQty: dec("12")})
	require.NoError(t, err)
	assert.True(t, out.SystemQty.IsZero())
	assert.True(t, dec("12").Equal(out.Variance))
	require.NotNil(t, out.EntryID)

	// Con promedio 0 la cantidad entra pero el valor queda en 0
	bal, _ := store.Balances().Get(ctx, "PIG-RED")
	assert.True(t, dec("12").Equal(bal.QtyOnHand))
	assert.True(t, bal.TotalValue.IsZero())
}

func TestReconcile_Invalidos(t *testing.T) {
	_, _, uc := newEnv(t)
	ctx := context.Background()

	_, err := uc.Reconcile(ctx, dto.PostStocktakeRequest{MaterialCode: "", CountedQty: dec("1")})
	assert.Equal(t, domain.ErrInvalidInput, err)

	_, err = uc.Reconcile(ctx, dto.PostStocktakeRequest{MaterialCode: "PIG-RED", CountedQty: dec("-1")})
	assert.Equal(t, domain.ErrInvalidInput, err, "el conteo físico no puede ser negativo")

	_, err = uc.Reconcile(ctx, dto.PostStocktakeRequest{MaterialCode: "NO-EXISTE", CountedQty: dec("1")})
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestListRecords_FiltraPorMaterial(t *testing.T) {
	store, posting, uc := newEnv(t)
	ctx := context.Background()
	err := store.Materials().Create(ctx, &entity.Material{
		Code: "SOL-01", Name: "Solvente", Category: entity.CategorySolvent,
		StockUOM: "L", IssueUOM: "L", IssueToStockFactor: dec("1"), Active: true,
	})
	require.NoError(t, err)

	_, err = posting.Receive(ctx, dto.PostPurchaseRequest{MaterialCode: "PIG-RED", Qty: dec("10"), TotalCost: dec("50")})
	require.NoError(t, err)
	_, err = uc.Reconcile(ctx, dto.PostStocktakeRequest{MaterialCode: "PIG-RED", CountedQty: dec("9")})
	require.NoError(t, err)
	_, err = uc.Reconcile(ctx, dto.PostStocktakeRequest{MaterialCode: "SOL-01", CountedQty: dec("3")})
	require.NoError(t, err)

	out, err := uc.ListRecords(ctx, "PIG-RED", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "PIG-RED", out.Items[0].MaterialCode)

	all, err := uc.ListRecords(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, "SOL-01", all.Items[0].MaterialCode, "historial del más reciente al más antiguo")
}
