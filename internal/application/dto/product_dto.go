package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto terminado.
type CreateProductRequest struct {
	Code          string          `json:"code" validate:"required,min=1,max=40"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category"`
	BaseBatchSize decimal.Decimal `json:"base_batch_size"`
	Notes         string          `json:"notes"`
}

// UpdateProductRequest entrada para actualizar un producto (el código es inmutable).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category"`
	BaseBatchSize *decimal.Decimal `json:"base_batch_size"`
	Active        *bool            `json:"active"`
	Notes         *string          `json:"notes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	BaseBatchSize decimal.Decimal `json:"base_batch_size"`
	Active        bool            `json:"active"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
