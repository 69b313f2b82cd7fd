package dto

import "github.com/shopspring/decimal"

// FormulaLineRequest body para agregar o corregir una línea de fórmula.
// UOM debe ser la unidad de stock o la unidad de salida del material.
type FormulaLineRequest struct {
	MaterialCode string          `json:"material_code" validate:"required"`
	QtyPerBatch  decimal.Decimal `json:"qty_per_batch"`
	UOM          string          `json:"uom" validate:"required"`
}

// FormulaLineResponse línea de fórmula enriquecida con datos del material.
type FormulaLineResponse struct {
	MaterialCode string          `json:"material_code"`
	MaterialName string          `json:"material_name"`
	QtyPerBatch  decimal.Decimal `json:"qty_per_batch"`
	UOM          string          `json:"uom"`
}

// FormulaResponse fórmula completa de un producto.
type FormulaResponse struct {
	ProductCode   string                `json:"product_code"`
	ProductName   string                `json:"product_name"`
	BaseBatchSize decimal.Decimal       `json:"base_batch_size"`
	Lines         []FormulaLineResponse `json:"lines"`
}
