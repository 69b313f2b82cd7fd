package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	Code               string          `json:"code" validate:"required,min=1,max=40"`
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	Category           string          `json:"category" validate:"required"`
	StockUOM           string          `json:"stock_uom" validate:"required"`
	IssueUOM           string          `json:"issue_uom,omitempty"`
	IssueToStockFactor decimal.Decimal `json:"issue_to_stock_factor"`
	StdWastagePct      decimal.Decimal `json:"std_wastage_pct"`
	IsCritical         bool            `json:"is_critical"`
	Notes              string          `json:"notes,omitempty"`
}

// UpdateMaterialRequest body para PUT /api/materials/:code. El código no se
// puede cambiar; campos nil se dejan intactos.
type UpdateMaterialRequest struct {
	Name               *string          `json:"name,omitempty"`
	Category           *string          `json:"category,omitempty"`
	StockUOM           *string          `json:"stock_uom,omitempty"`
	IssueUOM           *string          `json:"issue_uom,omitempty"`
	IssueToStockFactor *decimal.Decimal `json:"issue_to_stock_factor,omitempty"`
	StdWastagePct      *decimal.Decimal `json:"std_wastage_pct,omitempty"`
	IsCritical         *bool            `json:"is_critical,omitempty"`
	Active             *bool            `json:"active,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
}

// MaterialResponse respuesta estándar de material.
type MaterialResponse struct {
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	StockUOM           string          `json:"stock_uom"`
	IssueUOM           string          `json:"issue_uom,omitempty"`
	IssueToStockFactor decimal.Decimal `json:"issue_to_stock_factor"`
	StdWastagePct      decimal.Decimal `json:"std_wastage_pct"`
	IsCritical         bool            `json:"is_critical"`
	Active             bool            `json:"active"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// MaterialListResponse listado paginado de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
