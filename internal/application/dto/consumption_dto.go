package dto

import "github.com/shopspring/decimal"

// Estados de línea en el resultado de un consumo multi-línea.
const (
	LineStatusPosted       = "POSTED"        // asiento confirmado
	LineStatusSkipped      = "SKIPPED"       // cantidad requerida cero, no genera asiento
	LineStatusFailed       = "FAILED"        // la línea que abortó el consumo
	LineStatusNotAttempted = "NOT_ATTEMPTED" // líneas posteriores a la falla
)

// PostConsumptionRequest body para POST /api/consumptions. RefType acepta
// BATCH (producción, por defecto) o SALE (venta directa de producto).
type PostConsumptionRequest struct {
	ProductCode     string          `json:"product_code"`
	BatchMultiplier decimal.Decimal `json:"batch_multiplier"`
	RefType         string          `json:"ref_type,omitempty"`
	RefNo           string          `json:"ref_no,omitempty"`
	Note            string          `json:"note,omitempty"`
}

// RequirementDTO necesidad de material para un lote proyectado, comparada
// contra el saldo disponible.
type RequirementDTO struct {
	MaterialCode string          `json:"material_code"`
	MaterialName string          `json:"material_name"`
	QtyPerBatch  decimal.Decimal `json:"qty_per_batch"`
	UOM          string          `json:"uom"`
	QtyRequired  decimal.Decimal `json:"qty_required"` // en unidades de stock
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	EstCost      decimal.Decimal `json:"est_cost"` // QtyRequired * AvgCost
	Sufficient   bool            `json:"sufficient"`
}

// ConsumptionProjectionResponse proyección de un lote sin registrar nada.
type ConsumptionProjectionResponse struct {
	ProductCode     string           `json:"product_code"`
	ProductName     string           `json:"product_name"`
	BaseBatchSize   decimal.Decimal  `json:"base_batch_size"`
	BatchMultiplier decimal.Decimal  `json:"batch_multiplier"`
	Requirements    []RequirementDTO `json:"requirements"`
	TotalEstCost    decimal.Decimal  `json:"total_est_cost"`
	AllSufficient   bool             `json:"all_sufficient"`
}

// BatchCostResponse costeo de un lote a los promedios vigentes.
type BatchCostResponse struct {
	ProductCode     string           `json:"product_code"`
	ProductName     string           `json:"product_name"`
	BatchMultiplier decimal.Decimal  `json:"batch_multiplier"`
	OutputQty       decimal.Decimal  `json:"output_qty"` // BaseBatchSize * BatchMultiplier
	Lines           []RequirementDTO `json:"lines"`
	TotalCost       decimal.Decimal  `json:"total_cost"`
	CostPerUnit     decimal.Decimal  `json:"cost_per_unit"` // TotalCost / OutputQty
}

// ConsumptionLineResult resultado por material de un consumo registrado.
type ConsumptionLineResult struct {
	MaterialCode string          `json:"material_code"`
	Qty          decimal.Decimal `json:"qty"` // en unidades de stock, positiva
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
	Status       string          `json:"status"`
	EntryID      *int64          `json:"entry_id,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// ConsumptionResult resumen de un consumo multi-línea. Si Failed > 0 el
// consumo quedó parcial: las líneas POSTED ya son asientos inmutables y la
// corrección va por ajustes compensatorios.
type ConsumptionResult struct {
	TransactionID   string                  `json:"transaction_id"`
	ProductCode     string                  `json:"product_code"`
	BatchMultiplier decimal.Decimal         `json:"batch_multiplier"`
	RefType         string                  `json:"ref_type"`
	RefNo           string                  `json:"ref_no,omitempty"`
	Lines           []ConsumptionLineResult `json:"lines"`
	Posted          int                     `json:"posted"`
	Skipped         int                     `json:"skipped"`
	Failed          int                     `json:"failed"`
	NotAttempted    int                     `json:"not_attempted"`
	TotalCost       decimal.Decimal         `json:"total_cost"`
}
