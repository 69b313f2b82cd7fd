// Package costing implementa el costeo por promedio ponderado móvil
// (servicio de dominio, funciones puras sobre decimal).
package costing

import "github.com/shopspring/decimal"

// QtyEpsilon: cantidades con valor absoluto menor se tratan como cero.
// Absorbe residuos de redondeo del promedio al vaciar el stock.
var QtyEpsilon = decimal.New(1, -5) // 0.00001

// IsNegligible indica si una cantidad es despreciable (|q| < QtyEpsilon).
func IsNegligible(q decimal.Decimal) bool {
	return q.Abs().LessThan(QtyEpsilon)
}

// AverageCost deriva el costo promedio de un saldo (valor total / cantidad).
// Por convención es 0 cuando la cantidad es despreciable: un material sin
// existencias no tiene costo promedio. El ponderado de las entradas no
// necesita fórmula propia: cantidad y valor se acumulan con signo en el
// saldo y el promedio emerge de esta división.
func AverageCost(qtyOnHand, totalValue decimal.Decimal) decimal.Decimal {
	if IsNegligible(qtyOnHand) {
		return decimal.Zero
	}
	return totalValue.Div(qtyOnHand)
}
