package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/application/report"
)

// Tipos MIME de las exportaciones.
const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler maneja el reporte de valorización y las exportaciones de
// archivos (CSV, XLSX y PDF).
type ReportHandler struct {
	valuation *report.ValuationUseCase
	export    *report.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(valuation *report.ValuationUseCase, export *report.ExportUseCase) *ReportHandler {
	return &ReportHandler{valuation: valuation, export: export}
}

// Valuation godoc
// @Summary      Valorización del inventario
// @Description  Total general, subtotales por categoría y materiales críticos sin existencia, todo a costo promedio vigente.
// @Tags         reports
// @Produce      json
// @Success      200   {object}  dto.ValuationReportResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.valuation.Valuation(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ValuationPDF godoc
// @Summary      Valorización en PDF
// @Tags         exports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/exports/valuation.pdf [get]
func (h *ReportHandler) ValuationPDF(c *fiber.Ctx) error {
	data, filename, err := h.valuation.ValuationPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendFile(c, data, filename, mimePDF)
}

// StockOnHandCSV godoc
// @Summary      Existencias valorizadas en CSV
// @Tags         exports
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/exports/stock-on-hand.csv [get]
func (h *ReportHandler) StockOnHandCSV(c *fiber.Ctx) error {
	data, filename, err := h.export.StockOnHandCSV(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendFile(c, data, filename, mimeCSV)
}

// StockOnHandXLSX godoc
// @Summary      Existencias valorizadas en XLSX
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/exports/stock-on-hand.xlsx [get]
func (h *ReportHandler) StockOnHandXLSX(c *fiber.Ctx) error {
	data, filename, err := h.export.StockOnHandXLSX(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendFile(c, data, filename, mimeXLSX)
}

// LedgerCSV godoc
// @Summary      Libro de movimientos en CSV
// @Tags         exports
// @Produce      text/csv
// @Param        material_code  query  string  false  "Filtrar por material"
// @Success      200  {file}  binary
// @Router       /api/exports/ledger.csv [get]
func (h *ReportHandler) LedgerCSV(c *fiber.Ctx) error {
	data, filename, err := h.export.LedgerCSV(c.Context(), c.Query("material_code"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendFile(c, data, filename, mimeCSV)
}

// LedgerXLSX godoc
// @Summary      Libro de movimientos en XLSX
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        material_code  query  string  false  "Filtrar por material"
// @Success      200  {file}  binary
// @Router       /api/exports/ledger.xlsx [get]
func (h *ReportHandler) LedgerXLSX(c *fiber.Ctx) error {
	data, filename, err := h.export.LedgerXLSX(c.Context(), c.Query("material_code"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendFile(c, data, filename, mimeXLSX)
}

// sendFile responde el archivo como descarga adjunta.
func sendFile(c *fiber.Ctx, data []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
