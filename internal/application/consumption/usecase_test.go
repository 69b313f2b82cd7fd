package consumption_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AcroChem-api/internal/application/consumption"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del consumo por fórmula: proyección, costeo de lote y registro con
// semántica de confirmación parcial (las líneas confirmadas no se revierten).
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type env struct {
	store   *memory.Store
	posting *ledger.PostingUseCase
	uc      *consumption.UseCase
}

// newEnv arma el catálogo de un lote de pintura blanca: resina y solvente en
// unidad de stock, pigmento dosificado en gramos sobre stock en kilos.
func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	posting := ledger.NewPostingUseCase(store, store.Materials(), ledger.NopMetrics{})
	uc := consumption.NewUseCase(
		store, posting,
		store.Products(), store.Materials(), store.Formulas(), store.Balances(),
		ledger.NopMetrics{},
	)
	ctx := context.Background()

	materials := []entity.Material{
		{Code: "PIG-WHT", Name: "Pigmento blanco", Category: entity.CategoryPigment, StockUOM: "KG", IssueUOM: "G", IssueToStockFactor: dec("0.001"), Active: true},
		{Code: "RES-ACR", Name: "Resina acrílica", Category: entity.CategoryResin, StockUOM: "KG", IssueUOM: "KG", IssueToStockFactor: dec("1"), Active: true},
		{Code: "SOL-XYL", Name: "Xileno", Category: entity.CategorySolvent, StockUOM: "L", IssueUOM: "L", IssueToStockFactor: dec("1"), Active: true},
	}
	for i := range materials {
		require.NoError(t, store.Materials().Create(ctx, &materials[i]))
	}
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		Code: "PIN-BLA", Name: "Pintura blanca", BaseBatchSize: dec("100"), Active: true,
	}))
	lines := []entity.FormulaLine{
		{ProductCode: "PIN-BLA", MaterialCode: "PIG-WHT", QtyPerBatch: dec("800"), UOM: "G"},
		{ProductCode: "PIN-BLA", MaterialCode: "RES-ACR", QtyPerBatch: dec("40"), UOM: "KG"},
		{ProductCode: "PIN-BLA", MaterialCode: "SOL-XYL", QtyPerBatch: dec("18"), UOM: "L"},
	}
	for i := range lines {
		require.NoError(t, store.Formulas().AddLine(ctx, &lines[i]))
	}
	return &env{store: store, posting: posting, uc: uc}
}

func (e *env) buy(t *testing.T, code, qty, totalCost string) {
	t.Helper()
	_, err := e.posting.Receive(context.Background(), dto.PostPurchaseRequest{
		MaterialCode: code, Qty: dec(qty), TotalCost: dec(totalCost),
	})
	require.NoError(t, err)
}

// fakeMetrics acumula los contadores de observabilidad en memoria.
type fakeMetrics struct {
	posted   map[string]int
	rejected map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{posted: map[string]int{}, rejected: map[string]int{}}
}

func (m *fakeMetrics) EntryPosted(kind string)       { m.posted[kind]++ }
func (m *fakeMetrics) PostingRejected(reason string) { m.rejected[reason]++ }

func TestProject_ConversionDeUnidadesYSuficiencia(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.buy(t, "PIG-WHT", "10", "200") // promedio 20
	e.buy(t, "RES-ACR", "100", "500") // promedio 5
	// SOL-XYL sin stock

	out, err := e.uc.Project(ctx, "PIN-BLA", dec("2"))
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(out.BaseBatchSize))
	require.Len(t, out.Requirements, 3)

	// Ordenadas por código de material: PIG-WHT, RES-ACR, SOL-XYL
	pig := out.Requirements[0]
	assert.Equal(t, "PIG-WHT", pig.MaterialCode)
	assert.True(t, dec("1.6").Equal(pig.QtyRequired), "800 G x2 = 1600 G -> 1.6 KG de stock")
	assert.True(t, dec("20").Equal(pig.AvgCost))
	assert.True(t, dec("32").Equal(pig.EstCost))
	assert.True(t, pig.Sufficient)

	res := out.Requirements[1]
	assert.True(t, dec("80").Equal(res.QtyRequired))
	assert.True(t, dec("400").Equal(res.EstCost))
	assert.True(t, res.Sufficient)

	sol := out.Requirements[2]
	assert.True(t, dec("36").Equal(sol.QtyRequired))
	assert.False(t, sol.Sufficient, "sin stock el requerimiento queda marcado insuficiente")

	assert.True(t, dec("432").Equal(out.TotalEstCost), "32 + 400 + 0")
	assert.False(t, out.AllSufficient)
}

func TestProject_Invalidos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.Project(ctx, "PIN-BLA", decimal.Zero)
	assert.Equal(t, domain.ErrInvalidInput, err)

	_, err = e.uc.Project(ctx, "NO-EXISTE", dec("1"))
	assert.Equal(t, domain.ErrNotFound, err)

	// Producto sin fórmula no se puede proyectar
	require.NoError(t, e.store.Products().Create(ctx, &entity.Product{Code: "SIN-FORM", Name: "Sin fórmula", Active: true}))
	_, err = e.uc.Project(ctx, "SIN-FORM", dec("1"))
	assert.Equal(t, domain.ErrInvalidInput, err)
}

func TestBatchCost_CostoPorUnidadDeSalida(t *testing.T) {
	e := newEnv(t)
	e.buy(t, "PIG-WHT", "10", "200")
	e.buy(t, "RES-ACR", "100", "500")
	e.buy(t, "SOL-XYL", "50", "100") // promedio 2

	out, err := e.uc.BatchCost(context.Background(), "PIN-BLA", dec("1"))
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(out.OutputQty), "BaseBatchSize x multiplicador")
	// 0.8*20 + 40*5 + 18*2 = 16 + 200 + 36 = 252
	assert.True(t, dec("252").Equal(out.TotalCost))
	assert.True(t, dec("2.52").Equal(out.CostPerUnit))
}

func TestPost_TodasLasLineasConfirmadas(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.buy(t, "PIG-WHT", "10", "200")
	e.buy(t, "RES-ACR", "100", "500")
	e.buy(t, "SOL-XYL", "50", "100")

	result, err := e.uc.Post(ctx, dto.PostConsumptionRequest{
		ProductCode:     "PIN-BLA",
		BatchMultiplier: dec("1"),
		RefNo:           "OP-042",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.TransactionID)
	assert.Equal(t, entity.RefTypeBatch, result.RefType, "BATCH es el tipo por defecto")
	assert.Equal(t, 3, result.Posted)
	assert.Zero(t, result.Failed)
	assert.Zero(t, result.NotAttempted)
	// 0.8*20 + 40*5 + 18*2 = 252
	assert.True(t, dec("252").Equal(result.TotalCost))
	for _, line := range result.Lines {
		assert.Equal(t, dto.LineStatusPosted, line.Status)
		require.NotNil(t, line.EntryID)
	}

	// Saldos descontados
	bal, _ := e.store.Balances().Get(ctx, "RES-ACR")
	assert.True(t, dec("60").Equal(bal.QtyOnHand))

	// Todas las salidas comparten la referencia del documento
	entries, err := e.store.Ledger().List(ctx, "", entity.EntryKindConsumption, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, "OP-042", entry.RefNo)
		assert.Equal(t, entity.RefTypeBatch, entry.RefType)
	}
}

func TestPost_SinRefNo_UsaElIDDeTransaccion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.buy(t, "PIG-WHT", "10", "200")
	e.buy(t, "RES-ACR", "100", "500")
	e.buy(t, "SOL-XYL", "50", "100")

	result, err := e.uc.Post(ctx, dto.PostConsumptionRequest{ProductCode: "PIN-BLA", BatchMultiplier: dec("1")})
	require.NoError(t, err)

	entries, err := e.store.Ledger().List(ctx, "", entity.EntryKindConsumption, 10, 0)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t, result.TransactionID, entry.RefNo, "sin ref_no las salidas quedan atadas por el ID de transacción")
	}
}

func TestPost_ParcialAbortaLasRestantes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	// PIG alcanza, RES no, SOL alcanza: RES falla y SOL no se intenta
	e.buy(t, "PIG-WHT", "10", "200")
	e.buy(t, "RES-ACR", "20", "100")
	e.buy(t, "SOL-XYL", "50", "100")

	result, err := e.uc.Post(ctx, dto.PostConsumptionRequest{ProductCode: "PIN-BLA", BatchMultiplier: dec("1")})
	assert.Equal(t, domain.ErrPartialPosting, err, "hubo líneas confirmadas antes de la falla")
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Posted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.NotAttempted)

	require.Len(t, result.Lines, 3)
	assert.Equal(t, dto.LineStatusPosted, result.Lines[0].Status)
	assert.Equal(t, dto.LineStatusFailed, result.Lines[1].Status)
	assert.NotEmpty(t, result.Lines[1].Error)
	assert.Equal(t, dto.LineStatusNotAttempted, result.Lines[2].Status)

	// La línea confirmada quedó firme; la fallida y la no intentada, intactas
	pig, _ := e.store.Balances().Get(ctx, "PIG-WHT")
	assert.True(t, dec("9.2").Equal(pig.QtyOnHand))
	res, _ := e.store.Balances().Get(ctx, "RES-ACR")
	assert.True(t, dec("20").Equal(res.QtyOnHand))
	sol, _ := e.store.Balances().Get(ctx, "SOL-XYL")
	assert.True(t, dec("50").Equal(sol.QtyOnHand))
}

// La línea que falla por stock insuficiente cuenta como rechazo en los
// contadores, igual que una salida directa rechazada por el motor.
func TestPost_StockInsuficiente_CuentaElRechazo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	spy := newFakeMetrics()
	uc := consumption.NewUseCase(
		e.store, e.posting,
		e.store.Products(), e.store.Materials(), e.store.Formulas(), e.store.Balances(),
		spy,
	)
	e.buy(t, "PIG-WHT", "10", "200")
	e.buy(t, "RES-ACR", "20", "100")
	e.buy(t, "SOL-XYL", "50", "100")

	_, err := uc.Post(ctx, dto.PostConsumptionRequest{ProductCode: "PIN-BLA", BatchMultiplier: dec("1")})
	assert.Equal(t, domain.ErrPartialPosting, err)
	assert.Equal(t, 1, spy.posted[entity.EntryKindConsumption], "solo la línea confirmada suma al contador de asientos")
	assert.Equal(t, 1, spy.rejected["insufficient_stock"], "la línea fallida suma al contador de rechazos")
}

func TestPost_PrimeraLineaFalla_NadaConfirmado(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	// PIG sin stock: la primera línea falla y el resto no se intenta
	e.buy(t, "RES-ACR", "100", "500")
	e.buy(t, "SOL-XYL", "50", "100")

	result, err := e.uc.Post(ctx, dto.PostConsumptionRequest{ProductCode: "PIN-BLA", BatchMultiplier: dec("1")})
	assert.Equal(t, domain.ErrInsufficientStock, err, "sin líneas confirmadas el error es el de la falla")
	require.NotNil(t, result)
	assert.Zero(t, result.Posted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.NotAttempted)

	// Ningún asiento de consumo en el libro
	count, err := e.store.Ledger().Count(ctx, "", entity.EntryKindConsumption)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPost_LineaConCantidadCero_SeOmite(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	// Línea decorativa con cantidad cero (cargada directo al almacén)
	require.NoError(t, e.store.Formulas().AddLine(ctx, &entity.FormulaLine{
		ProductCode: "PIN-BLA", MaterialCode: "SOL-XYL2", QtyPerBatch: decimal.Zero, UOM: "L",
	}))
	require.NoError(t, e.store.Materials().Create(ctx, &entity.Material{
		Code: "SOL-XYL2", Name: "Xileno alterno", Category: entity.CategorySolvent,
		StockUOM: "L", IssueUOM: "L", IssueToStockFactor: dec("1"), Active: true,
	}))
	e.buy(t, "PIG-WHT", "10", "200")
	e.buy(t, "RES-ACR", "100", "500")
	e.buy(t, "SOL-XYL", "50", "100")

	result, err := e.uc.Post(ctx, dto.PostConsumptionRequest{ProductCode: "PIN-BLA", BatchMultiplier: dec("1")})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Posted)
	assert.Equal(t, 1, result.Skipped, "cantidad cero no genera asiento")
}

func TestPost_RefTypeVenta(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.buy(t, "PIG-WHT", "10", "200")
	e.buy(t, "RES-ACR", "100", "500")
	e.buy(t, "SOL-XYL", "50", "100")

	_, err := e.uc.Post(ctx, dto.PostConsumptionRequest{
		ProductCode: "PIN-BLA", BatchMultiplier: dec("0.5"), RefType: entity.RefTypeSale, RefNo: "VTA-9",
	})
	require.NoError(t, err)

	entries, err := e.store.Ledger().List(ctx, "RES-ACR", "", 1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.RefTypeSale, entries[0].RefType)
	assert.True(t, dec("-20").Equal(entries[0].Qty), "40 por lote x 0.5")
}

func TestPost_RefTypeInvalido(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Post(context.Background(), dto.PostConsumptionRequest{
		ProductCode: "PIN-BLA", BatchMultiplier: dec("1"), RefType: "REGALO",
	})
	assert.Equal(t, domain.ErrInvalidInput, err)
}
