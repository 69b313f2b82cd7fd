package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appreport "github.com/jhoicas/AcroChem-api/internal/application/report"
)

var _ appreport.TableWriter = (*ExcelWriter)(nil)

// ExcelWriter serializa tablas como XLSX con excelize. Los decimales se
// escriben como números (celdas sumables en Excel) y las fechas como texto
// para no depender del formato regional de la hoja.
type ExcelWriter struct{}

// NewExcelWriter construye el writer.
func NewExcelWriter() *ExcelWriter { return &ExcelWriter{} }

// WriteTable escribe encabezado y filas en una hoja y devuelve los bytes del documento.
func (w *ExcelWriter) WriteTable(sheetName string, header []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheetName != "" && sheetName != sheet {
		if err := f.SetSheetName(sheet, sheetName); err != nil {
			return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
		}
		sheet = sheetName
	}

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return nil, fmt.Errorf("xlsx: escribir encabezado: %w", err)
	}

	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("xlsx: fila con %d celdas, se esperaban %d", len(row), len(header))
		}
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = excelCell(cell)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: coordenadas de fila: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("xlsx: escribir fila: %w", err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// excelCell adapta una celda al tipo que excelize sabe escribir.
func excelCell(cell any) any {
	switch v := cell.(type) {
	case decimal.Decimal:
		f, _ := v.Float64()
		return f
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return v
	}
}
