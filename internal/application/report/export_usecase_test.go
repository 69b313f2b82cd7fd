package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
	appreport "github.com/jhoicas/AcroChem-api/internal/application/report"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/infrastructure/memory"
	infrareport "github.com/jhoicas/AcroChem-api/internal/infrastructure/report"
)

func newExportEnv(t *testing.T) (*memory.Store, *appreport.ExportUseCase) {
	t.Helper()
	store, posting := newReportEnv(t)

	// Una salida para que el libro tenga más de un tipo de asiento.
	_, err := posting.Issue(context.Background(), ledger.IssueInput{
		MaterialCode: "PIG-TIO2",
		Qty:          dec("40"),
		RefType:      entity.RefTypeBatch,
		RefNo:        "OP-001",
	})
	require.NoError(t, err)

	uc := appreport.NewExportUseCase(
		store.Reports(),
		store.Ledger(),
		infrareport.NewCSVWriter(),
		infrareport.NewExcelWriter(),
	)
	return store, uc
}

func TestStockOnHandCSV_ExistenciasValorizadas(t *testing.T) {
	_, uc := newExportEnv(t)

	data, filename, err := uc.StockOnHandCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stock_on_hand.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	// Encabezado + 3 materiales con saldo, ordenados por código.
	require.Len(t, records, 4)
	assert.Equal(t, "material_code", records[0][0])
	assert.Equal(t, "PIG-OXR01", records[1][0])
	assert.Equal(t, "PIG-TIO2", records[2][0])
	assert.Equal(t, "SOL-XIL01", records[3][0])

	// PIG-TIO2: quedaron 60 a promedio 5 tras la salida.
	assert.True(t, dec("60").Equal(dec(records[2][4])))
	assert.True(t, dec("5").Equal(dec(records[2][5])))
	assert.True(t, dec("300").Equal(dec(records[2][6])))
	assert.Equal(t, "true", records[2][7])
}

func TestLedgerCSV_FiltraPorMaterial(t *testing.T) {
	_, uc := newExportEnv(t)

	data, filename, err := uc.LedgerCSV(context.Background(), "PIG-TIO2")
	require.NoError(t, err)
	assert.Equal(t, "ledger.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	// Compra y salida del pigmento, más reciente primero.
	require.Len(t, records, 3)
	assert.Equal(t, entity.EntryKindConsumption, records[1][2])
	assert.Equal(t, "OP-001", records[1][4])
	assert.True(t, dec("-40").Equal(dec(records[1][6])))
	assert.Equal(t, entity.EntryKindPurchase, records[2][2])
	assert.True(t, dec("100").Equal(dec(records[2][6])))
}

func TestLedgerCSV_SinFiltroTraeTodo(t *testing.T) {
	_, uc := newExportEnv(t)

	data, _, err := uc.LedgerCSV(context.Background(), "")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	// Tres compras y una salida.
	assert.Len(t, records, 5)
}

func TestStockOnHandXLSX_HojaConFilas(t *testing.T) {
	_, uc := newExportEnv(t)

	data, filename, err := uc.StockOnHandXLSX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stock_on_hand.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Stock On Hand")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "PIG-TIO2", rows[2][0])
}

func TestLedgerXLSX_HojaConFilas(t *testing.T) {
	_, uc := newExportEnv(t)

	data, filename, err := uc.LedgerXLSX(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ledger.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Ledger")
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}
