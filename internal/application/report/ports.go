package report

import (
	"context"

	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// TableWriter serializa una tabla (encabezado + filas) a bytes de un formato
// de exportación. Cada implementación decide cómo representar decimales y
// fechas en su formato.
type TableWriter interface {
	WriteTable(sheetName string, header []string, rows [][]any) ([]byte, error)
}

// ValuationPDFGenerator genera la representación gráfica (PDF) del reporte
// de valorización: resumen por categoría más el detalle de existencias.
type ValuationPDFGenerator interface {
	GenerateValuationPDF(
		ctx context.Context,
		summary *dto.ValuationReportResponse,
		stock []repository.StockOnHandResult,
	) ([]byte, error)
}
