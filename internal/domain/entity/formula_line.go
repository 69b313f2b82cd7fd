package entity

import "github.com/shopspring/decimal"

// FormulaLine es una línea de fórmula (BOM): cantidad de materia prima por
// lote estándar de un producto. UOM debe ser la unidad de stock o la unidad
// de salida del material; máximo una línea por par producto-material.
type FormulaLine struct {
	ProductCode  string
	MaterialCode string
	QtyPerBatch  decimal.Decimal
	UOM          string
}
