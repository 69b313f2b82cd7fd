package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialBalance es la proyección materializada del saldo de un material:
// QtyOnHand y TotalValue equivalen a SUM(qty) y SUM(total_cost) del libro.
// Se actualiza en la misma transacción que cada asiento y siempre puede
// reconstruirse desde el ledger.
type MaterialBalance struct {
	MaterialCode string
	QtyOnHand    decimal.Decimal
	TotalValue   decimal.Decimal
	UpdatedAt    time.Time
}
