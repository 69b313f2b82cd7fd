// Package report implementa los writers de exportación (CSV, XLSX) y el
// generador del reporte de valorización en PDF.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	appreport "github.com/jhoicas/AcroChem-api/internal/application/report"
)

var _ appreport.TableWriter = (*CSVWriter)(nil)

// CSVWriter serializa tablas como CSV (RFC 4180, UTF-8). Los decimales salen
// con su representación exacta y las fechas en RFC 3339; el nombre de hoja se
// ignora porque CSV no tiene hojas.
type CSVWriter struct{}

// NewCSVWriter construye el writer.
func NewCSVWriter() *CSVWriter { return &CSVWriter{} }

// WriteTable escribe encabezado y filas, y devuelve los bytes del documento.
func (w *CSVWriter) WriteTable(_ string, header []string, rows [][]any) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("csv: escribir encabezado: %w", err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("csv: fila con %d celdas, se esperaban %d", len(row), len(header))
		}
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := cw.Write(record); err != nil {
			return nil, fmt.Errorf("csv: escribir fila: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}

// formatCell convierte una celda a texto: decimales exactos, fechas RFC 3339.
func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}
