package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostPurchaseRequest body para POST /api/purchases. La cantidad va en
// unidades de stock y el costo es el total de la compra (la DB guarda el
// costo unitario derivado).
type PostPurchaseRequest struct {
	MaterialCode string          `json:"material_code"`
	Qty          decimal.Decimal `json:"qty"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	RefNo        string          `json:"ref_no,omitempty"`
	Note         string          `json:"note,omitempty"`
}

// PostAdjustmentRequest body para POST /api/adjustments. Qty va con signo;
// UnitCost aplica solo a aumentos (omitido equivale a 0) y se ignora en
// disminuciones, que salen al promedio vigente.
type PostAdjustmentRequest struct {
	MaterialCode string           `json:"material_code"`
	Qty          decimal.Decimal  `json:"qty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	RefNo        string           `json:"ref_no,omitempty"`
	Note         string           `json:"note,omitempty"`
}

// LedgerEntryResponse asiento del libro de movimientos.
type LedgerEntryResponse struct {
	ID           int64           `json:"id"`
	EntryDate    time.Time       `json:"entry_date"`
	Kind         string          `json:"kind"`
	RefType      string          `json:"ref_type,omitempty"`
	RefNo        string          `json:"ref_no,omitempty"`
	MaterialCode string          `json:"material_code"`
	Qty          decimal.Decimal `json:"qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// LedgerListResponse historial paginado del libro.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// MaterialBalanceResponse saldo vigente de un material con el costo promedio
// derivado (TotalValue/QtyOnHand, 0 si el saldo es despreciable).
type MaterialBalanceResponse struct {
	MaterialCode string          `json:"material_code"`
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockOnHandRowDTO fila de la vista de existencias.
type StockOnHandRowDTO struct {
	MaterialCode string          `json:"material_code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	StockUOM     string          `json:"stock_uom"`
	IsCritical   bool            `json:"is_critical"`
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

// StockOnHandResponse existencias valorizadas más el total general.
type StockOnHandResponse struct {
	Items      []StockOnHandRowDTO `json:"items"`
	TotalValue decimal.Decimal     `json:"total_value"`
}

// NegativeBalanceDTO material con saldo negativo detectado por el chequeo de
// integridad (producto de ajustes manuales o conteos, nunca de salidas).
type NegativeBalanceDTO struct {
	MaterialCode string          `json:"material_code"`
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// BalanceDriftDTO discrepancia entre el saldo mantenido y el pliegue del
// libro; lo normal es una lista vacía.
type BalanceDriftDTO struct {
	MaterialCode string          `json:"material_code"`
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
	LedgerQty    decimal.Decimal `json:"ledger_qty"`
	QtyDrift     decimal.Decimal `json:"qty_drift"`
	TotalValue   decimal.Decimal `json:"total_value"`
	LedgerValue  decimal.Decimal `json:"ledger_value"`
	ValueDrift   decimal.Decimal `json:"value_drift"`
}
