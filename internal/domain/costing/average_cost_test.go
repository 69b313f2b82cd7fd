package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AcroChem-api/internal/domain/costing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del promedio ponderado móvil. La regla de oro: el costo de las salidas
// es el promedio ANTES del movimiento; el de las entradas viene del documento.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAverageCost_EntradaPonderaElPromedio(t *testing.T) {
	// 100 kg a 5.00 + 50 kg a 8.00: el saldo acumula 150 kg con valor 900
	qty := dec("100").Add(dec("50"))
	value := dec("500").Add(dec("400"))
	got := costing.AverageCost(qty, value)
	assert.True(t, dec("6").Equal(got), "promedio esperado 6.00, got %s", got)
}

func TestAverageCost_DerivadoDelSaldo(t *testing.T) {
	// 60 unidades con valor 300 -> promedio 5.00
	got := costing.AverageCost(dec("60"), dec("300"))
	assert.True(t, dec("5").Equal(got))
}

func TestAverageCost_SaldoDespreciable_RetornaCero(t *testing.T) {
	// Residuo de redondeo al vaciar stock: el promedio se reinicia a 0
	got := costing.AverageCost(dec("0.000001"), dec("0.0000032"))
	assert.True(t, got.IsZero(), "con cantidad despreciable el promedio debe ser 0")

	got = costing.AverageCost(decimal.Zero, decimal.Zero)
	assert.True(t, got.IsZero())
}

func TestAverageCost_SaldoNegativo(t *testing.T) {
	// Saldo negativo (ajustes manuales): el promedio sigue siendo valor/cantidad
	got := costing.AverageCost(dec("-10"), dec("-50"))
	assert.True(t, dec("5").Equal(got), "saldo -10 con valor -50 mantiene promedio 5")
}

func TestIsNegligible_UmbralExacto(t *testing.T) {
	require.True(t, costing.IsNegligible(dec("0.000009")))
	require.True(t, costing.IsNegligible(dec("-0.000009")))
	require.False(t, costing.IsNegligible(dec("0.00001")), "el umbral es estricto: |q| < epsilon")
	require.False(t, costing.IsNegligible(dec("0.5")))
}

// TestAverageCost_SalidaNoMueveElPromedio verifica la propiedad clave del
// promedio móvil: una salida costeada al promedio vigente deja el promedio
// intacto, sin importar cuánto se consuma.
func TestAverageCost_SalidaNoMueveElPromedio(t *testing.T) {
	// entra 20 a 9.00 sobre 80 a 4.00: 100 unidades con valor 500 -> promedio 5.00
	qty := dec("80").Add(dec("20"))
	value := dec("320").Add(dec("180"))
	avg := costing.AverageCost(qty, value)
	assert.True(t, dec("5").Equal(avg), "promedio tras la entrada debe ser 5.00")

	// salen 20 unidades al promedio vigente: quedan 80 con valor 400
	qty = qty.Sub(dec("20"))
	value = value.Sub(dec("20").Mul(avg))
	assert.True(t, avg.Equal(costing.AverageCost(qty, value)),
		"consumir al promedio no cambia el promedio")
}

// TestAverageCost_RecibirYConsumirDesdeCero: partiendo de stock vacío,
// recibir Q y consumir Q regresa al estado inicial (cantidad 0, promedio 0).
func TestAverageCost_RecibirYConsumirDesdeCero(t *testing.T) {
	qty, value := dec("100"), dec("500")
	avg := costing.AverageCost(qty, value)
	require.True(t, dec("5").Equal(avg))

	qty = qty.Sub(dec("100"))
	value = value.Sub(dec("100").Mul(avg))
	assert.True(t, qty.IsZero())
	assert.True(t, costing.AverageCost(qty, value).IsZero(),
		"al vaciar el stock el promedio vuelve a 0")
}
