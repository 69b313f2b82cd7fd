package report

import (
	"context"

	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// exportLimit tope de asientos por exportación del libro.
const exportLimit = 2000

// ExportUseCase exporta existencias y libro de movimientos a CSV y XLSX.
// Ambos formatos comparten la misma tabla; cada writer decide la
// representación de celdas.
type ExportUseCase struct {
	reportRepo repository.ReportRepository
	ledgerRepo repository.LedgerRepository
	csv        TableWriter
	xlsx       TableWriter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	reportRepo repository.ReportRepository,
	ledgerRepo repository.LedgerRepository,
	csv TableWriter,
	xlsx TableWriter,
) *ExportUseCase {
	return &ExportUseCase{
		reportRepo: reportRepo,
		ledgerRepo: ledgerRepo,
		csv:        csv,
		xlsx:       xlsx,
	}
}

var stockHeader = []string{
	"material_code", "name", "category", "stock_uom",
	"qty_on_hand", "avg_cost", "stock_value", "is_critical",
}

var ledgerHeader = []string{
	"id", "entry_date", "kind", "ref_type", "ref_no",
	"material_code", "qty", "unit_cost", "total_cost", "note",
}

// StockOnHandCSV exporta las existencias valorizadas como CSV.
func (uc *ExportUseCase) StockOnHandCSV(ctx context.Context) ([]byte, string, error) {
	rows, err := uc.stockRows(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.csv.WriteTable("Stock On Hand", stockHeader, rows)
	if err != nil {
		return nil, "", err
	}
	return data, "stock_on_hand.csv", nil
}

// StockOnHandXLSX exporta las existencias valorizadas como XLSX.
func (uc *ExportUseCase) StockOnHandXLSX(ctx context.Context) ([]byte, string, error) {
	rows, err := uc.stockRows(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.xlsx.WriteTable("Stock On Hand", stockHeader, rows)
	if err != nil {
		return nil, "", err
	}
	return data, "stock_on_hand.xlsx", nil
}

// LedgerCSV exporta el libro (los últimos 2000 asientos, más recientes
// primero) como CSV; materialCode vacío no filtra.
func (uc *ExportUseCase) LedgerCSV(ctx context.Context, materialCode string) ([]byte, string, error) {
	rows, err := uc.ledgerRows(ctx, materialCode)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.csv.WriteTable("Ledger", ledgerHeader, rows)
	if err != nil {
		return nil, "", err
	}
	return data, "ledger.csv", nil
}

// LedgerXLSX exporta el libro como XLSX.
func (uc *ExportUseCase) LedgerXLSX(ctx context.Context, materialCode string) ([]byte, string, error) {
	rows, err := uc.ledgerRows(ctx, materialCode)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.xlsx.WriteTable("Ledger", ledgerHeader, rows)
	if err != nil {
		return nil, "", err
	}
	return data, "ledger.xlsx", nil
}

func (uc *ExportUseCase) stockRows(ctx context.Context) ([][]any, error) {
	stock, err := uc.reportRepo.StockOnHand(ctx, "")
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(stock))
	for _, s := range stock {
		rows = append(rows, []any{
			s.MaterialCode, s.Name, s.Category, s.StockUOM,
			s.QtyOnHand, s.AvgCost, s.TotalValue, s.IsCritical,
		})
	}
	return rows, nil
}

func (uc *ExportUseCase) ledgerRows(ctx context.Context, materialCode string) ([][]any, error) {
	entries, err := uc.ledgerRepo.List(ctx, materialCode, "", exportLimit, 0)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.ID, e.EntryDate, e.Kind, e.RefType, e.RefNo,
			e.MaterialCode, e.Qty, e.UnitCost, e.TotalCost, e.Note,
		})
	}
	return rows, nil
}
