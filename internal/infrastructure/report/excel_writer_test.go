package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/AcroChem-api/internal/infrastructure/report"
)

func TestExcelWriter_HojaYCeldas(t *testing.T) {
	w := report.NewExcelWriter()
	entryDate := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	data, err := w.WriteTable("Existencias", []string{"code", "qty", "date"}, [][]any{
		{"PIG-TIO2", decimal.RequireFromString("12.5"), entryDate},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Existencias")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"code", "qty", "date"}, rows[0])
	assert.Equal(t, "PIG-TIO2", rows[1][0])
	// Los decimales van como número de celda; las fechas como texto.
	assert.Equal(t, "12.5", rows[1][1])
	assert.Equal(t, "2025-03-14 10:30:00", rows[1][2])
}

func TestExcelWriter_HojaPorDefecto(t *testing.T) {
	w := report.NewExcelWriter()

	data, err := w.WriteTable("", []string{"code"}, [][]any{{"SOL-XIL01"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SOL-XIL01", rows[1][0])
}

func TestExcelWriter_FilaConAnchoIncorrecto(t *testing.T) {
	w := report.NewExcelWriter()

	_, err := w.WriteTable("Hoja", []string{"code", "qty"}, [][]any{{"PIG-TIO2", decimal.Zero, "extra"}})
	assert.Error(t, err)
}
