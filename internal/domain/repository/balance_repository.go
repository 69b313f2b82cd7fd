package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
)

// BalanceDriftResult es una fila de la verificación de integridad: compara
// el saldo mantenido contra el pliegue del libro para un material.
type BalanceDriftResult struct {
	MaterialCode string
	QtyOnHand    decimal.Decimal // saldo mantenido
	LedgerQty    decimal.Decimal // SUM(qty) del libro
	TotalValue   decimal.Decimal // valor mantenido
	LedgerValue  decimal.Decimal // SUM(total_cost) del libro
}

// BalanceRepository define el puerto para los saldos materializados por
// material. Las escrituras ocurren dentro de la transacción del asiento.
type BalanceRepository interface {
	// Get devuelve el saldo, o el saldo cero si el material nunca se movió.
	Get(ctx context.Context, materialCode string) (*entity.MaterialBalance, error)
	// GetForUpdate garantiza la fila y la bloquea (SELECT FOR UPDATE) para
	// serializar los asientos concurrentes del mismo material.
	GetForUpdate(ctx context.Context, materialCode string) (*entity.MaterialBalance, error)
	// Upsert escribe cantidad y valor absolutos calculados por el motor.
	Upsert(ctx context.Context, balance *entity.MaterialBalance) error
	// ListNegative devuelve saldos con cantidad por debajo de -epsilon.
	ListNegative(ctx context.Context, epsilon decimal.Decimal) ([]*entity.MaterialBalance, error)
	// ListDrift devuelve materiales cuyo saldo mantenido difiere del libro
	// en más de epsilon (cantidad o valor).
	ListDrift(ctx context.Context, epsilon decimal.Decimal) ([]BalanceDriftResult, error)
}
