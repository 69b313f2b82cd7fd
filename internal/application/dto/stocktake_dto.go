package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostStocktakeRequest body para POST /api/stocktakes.
type PostStocktakeRequest struct {
	MaterialCode string          `json:"material_code"`
	CountedQty   decimal.Decimal `json:"counted_qty"`
	Note         string          `json:"note,omitempty"`
}

// StocktakeResponse resultado de una conciliación de conteo físico.
// EntryID viene vacío cuando la varianza fue despreciable y no se asentó.
type StocktakeResponse struct {
	ID           string          `json:"id"`
	CountDate    time.Time       `json:"count_date"`
	MaterialCode string          `json:"material_code"`
	CountedQty   decimal.Decimal `json:"counted_qty"`
	SystemQty    decimal.Decimal `json:"system_qty"`
	Variance     decimal.Decimal `json:"variance"`
	EntryID      *int64          `json:"entry_id,omitempty"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StocktakeListResponse historial paginado de conteos.
type StocktakeListResponse struct {
	Items []StocktakeResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
