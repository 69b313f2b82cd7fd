package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryValuationDTO subtotal de valorización por categoría de material.
type CategoryValuationDTO struct {
	Category      string          `json:"category"`
	MaterialCount int             `json:"material_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ValuationReportResponse reporte de valorización del inventario.
type ValuationReportResponse struct {
	GeneratedAt       time.Time              `json:"generated_at"`
	TotalValue        decimal.Decimal        `json:"total_value"`
	Categories        []CategoryValuationDTO `json:"categories"`
	CriticalShortages int                    `json:"critical_shortages"` // críticos con saldo <= 0
}
