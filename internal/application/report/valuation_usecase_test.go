package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
	appreport "github.com/jhoicas/AcroChem-api/internal/application/report"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
	"github.com/jhoicas/AcroChem-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de valorización y exportación contra el almacén en memoria: los saldos
// los escribe el motor de asientos real, no fixtures a mano.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// stubPDFGenerator captura los argumentos y devuelve bytes fijos.
type stubPDFGenerator struct {
	summary *dto.ValuationReportResponse
	stock   []repository.StockOnHandResult
	err     error
}

func (g *stubPDFGenerator) GenerateValuationPDF(
	_ context.Context,
	summary *dto.ValuationReportResponse,
	stock []repository.StockOnHandResult,
) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.summary = summary
	g.stock = stock
	return []byte("%PDF-stub"), nil
}

// newReportEnv arma un inventario pequeño: dos pigmentos y un solvente con
// stock, y una resina crítica agotada.
func newReportEnv(t *testing.T) (*memory.Store, *ledger.PostingUseCase) {
	t.Helper()
	store := memory.NewStore()
	posting := ledger.NewPostingUseCase(store, store.Materials(), ledger.NopMetrics{})
	ctx := context.Background()

	seed := []entity.Material{
		{Code: "PIG-TIO2", Name: "Dióxido de titanio", Category: entity.CategoryPigment, StockUOM: "KG", IsCritical: true},
		{Code: "PIG-OXR01", Name: "Óxido de hierro rojo", Category: entity.CategoryPigment, StockUOM: "KG"},
		{Code: "SOL-XIL01", Name: "Xileno industrial", Category: entity.CategorySolvent, StockUOM: "L"},
		{Code: "RES-ACR01", Name: "Resina acrílica", Category: entity.CategoryResin, StockUOM: "KG", IsCritical: true},
	}
	for i := range seed {
		m := seed[i]
		m.IssueUOM = m.StockUOM
		m.IssueToStockFactor = decimal.NewFromInt(1)
		m.Active = true
		require.NoError(t, store.Materials().Create(ctx, &m))
	}

	buy := func(code, qty, total string) {
		_, err := posting.Receive(ctx, dto.PostPurchaseRequest{
			MaterialCode: code, Qty: dec(qty), TotalCost: dec(total),
		})
		require.NoError(t, err)
	}
	buy("PIG-TIO2", "100", "500")
	buy("PIG-OXR01", "50", "250")
	buy("SOL-XIL01", "100", "300")
	// RES-ACR01 queda sin existencia a propósito.

	return store, posting
}

func TestValuation_TotalYSubtotalesPorCategoria(t *testing.T) {
	store, _ := newReportEnv(t)
	uc := appreport.NewValuationUseCase(store.Reports(), &stubPDFGenerator{})

	out, err := uc.Valuation(context.Background())
	require.NoError(t, err)

	assert.True(t, dec("1050").Equal(out.TotalValue))
	assert.False(t, out.GeneratedAt.IsZero())

	// Categorías de mayor a menor valor; la resina sin saldo no aparece.
	require.Len(t, out.Categories, 2)
	assert.Equal(t, entity.CategoryPigment, out.Categories[0].Category)
	assert.Equal(t, 2, out.Categories[0].MaterialCount)
	assert.True(t, dec("750").Equal(out.Categories[0].TotalValue))
	assert.Equal(t, entity.CategorySolvent, out.Categories[1].Category)
	assert.True(t, dec("300").Equal(out.Categories[1].TotalValue))

	// La resina es crítica y está en cero; el dióxido es crítico pero tiene stock.
	assert.Equal(t, 1, out.CriticalShortages)
}

func TestValuation_InventarioVacio(t *testing.T) {
	store := memory.NewStore()
	uc := appreport.NewValuationUseCase(store.Reports(), &stubPDFGenerator{})

	out, err := uc.Valuation(context.Background())
	require.NoError(t, err)
	assert.True(t, out.TotalValue.IsZero())
	assert.Empty(t, out.Categories)
	assert.Zero(t, out.CriticalShortages)
}

func TestValuationPDF_DelegaEnElGenerador(t *testing.T) {
	store, _ := newReportEnv(t)
	gen := &stubPDFGenerator{}
	uc := appreport.NewValuationUseCase(store.Reports(), gen)

	data, filename, err := uc.ValuationPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), data)
	assert.Equal(t, "valorizacion_"+time.Now().Format("2006-01-02")+".pdf", filename)

	// El generador recibe el resumen calculado y el detalle de existencias.
	require.NotNil(t, gen.summary)
	assert.True(t, dec("1050").Equal(gen.summary.TotalValue))
	assert.Len(t, gen.stock, 3)
}

func TestValuationPDF_ErrorDelGenerador(t *testing.T) {
	store, _ := newReportEnv(t)
	boom := errors.New("sin espacio")
	uc := appreport.NewValuationUseCase(store.Reports(), &stubPDFGenerator{err: boom})

	data, filename, err := uc.ValuationPDF(context.Background())
	assert.True(t, errors.Is(err, boom))
	assert.Nil(t, data)
	assert.Empty(t, filename)
}
