package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AcroChem-api/internal/infrastructure/report"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de los writers de exportación: el CSV debe ser legible de vuelta con
// encoding/csv y conservar la representación exacta de los decimales.
// ──────────────────────────────────────────────────────────────────────────────

func TestCSVWriter_CeldasFormateadas(t *testing.T) {
	w := report.NewCSVWriter()
	entryDate := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	data, err := w.WriteTable("ignorada", []string{"code", "qty", "critical", "date", "note"}, [][]any{
		{"PIG-TIO2", decimal.RequireFromString("0.001"), true, entryDate, "con, coma"},
		{"SOL-XIL01", decimal.RequireFromString("-12.5"), false, entryDate, nil},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"code", "qty", "critical", "date", "note"}, records[0])
	// Decimales exactos, sin redondeo ni notación científica.
	assert.Equal(t, []string{"PIG-TIO2", "0.001", "true", "2025-03-14T10:30:00Z", "con, coma"}, records[1])
	assert.Equal(t, []string{"SOL-XIL01", "-12.5", "false", "2025-03-14T10:30:00Z", ""}, records[2])
}

func TestCSVWriter_SinFilas(t *testing.T) {
	w := report.NewCSVWriter()

	data, err := w.WriteTable("", []string{"code", "qty"}, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"code", "qty"}, records[0])
}

func TestCSVWriter_FilaConAnchoIncorrecto(t *testing.T) {
	w := report.NewCSVWriter()

	_, err := w.WriteTable("", []string{"code", "qty"}, [][]any{{"PIG-TIO2"}})
	assert.Error(t, err)
}
