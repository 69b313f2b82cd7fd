package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// ValuationUseCase arma el reporte de valorización del inventario: total
// general, subtotales por categoría y el conteo de materiales críticos sin
// existencia.
type ValuationUseCase struct {
	reportRepo repository.ReportRepository
	generator  ValuationPDFGenerator
}

// NewValuationUseCase construye el caso de uso.
func NewValuationUseCase(reportRepo repository.ReportRepository, generator ValuationPDFGenerator) *ValuationUseCase {
	return &ValuationUseCase{reportRepo: reportRepo, generator: generator}
}

// Valuation calcula el reporte a partir de los saldos vigentes.
func (uc *ValuationUseCase) Valuation(ctx context.Context) (*dto.ValuationReportResponse, error) {
	rows, err := uc.reportRepo.ValuationByCategory(ctx)
	if err != nil {
		return nil, err
	}
	shortages, err := uc.reportRepo.CountCriticalShortages(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]dto.CategoryValuationDTO, 0, len(rows))
	total := decimal.Zero
	for _, r := range rows {
		categories = append(categories, dto.CategoryValuationDTO{
			Category:      r.Category,
			MaterialCount: r.MaterialCount,
			TotalValue:    r.TotalValue,
		})
		total = total.Add(r.TotalValue)
	}
	return &dto.ValuationReportResponse{
		GeneratedAt:       time.Now(),
		TotalValue:        total,
		Categories:        categories,
		CriticalShortages: shortages,
	}, nil
}

// ValuationPDF genera el reporte en PDF con el detalle de existencias.
func (uc *ValuationUseCase) ValuationPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	summary, err := uc.Valuation(ctx)
	if err != nil {
		return nil, "", err
	}
	stock, err := uc.reportRepo.StockOnHand(ctx, "")
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateValuationPDF(ctx, summary, stock)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("valorizacion_%s.pdf", summary.GeneratedAt.Format("2006-01-02"))
	return pdfBytes, filename, nil
}
