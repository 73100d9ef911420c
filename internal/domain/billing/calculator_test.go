package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velia-co/crm-api/internal/domain/billing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeLine
// ──────────────────────────────────────────────────────────────────────────────

// Sin descuento ni impuesto, el total de la línea es cantidad * precio.
func TestComputeLine_SinDescuentoNiImpuesto(t *testing.T) {
	got := billing.ComputeLine(dec("3"), dec("25000"), decimal.Zero, decimal.Zero)

	assert.True(t, got.LineExtensionAmount.Equal(dec("75000")), "base: %s", got.LineExtensionAmount)
	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, got.LineTotal.Equal(got.LineExtensionAmount), "sin IVA ni descuento el total es la base")
}

// Vector de referencia de la factura típica colombiana: 2 unidades a 100.000
// con IVA 19% → base 200.000, IVA 38.000, total 238.000.
func TestComputeLine_IVA19(t *testing.T) {
	got := billing.ComputeLine(dec("2"), dec("100000"), decimal.Zero, dec("19"))

	assert.True(t, got.LineExtensionAmount.Equal(dec("200000")), "base: %s", got.LineExtensionAmount)
	assert.True(t, got.TaxAmount.Equal(dec("38000")), "IVA: %s", got.TaxAmount)
	assert.True(t, got.LineTotal.Equal(dec("238000")), "total: %s", got.LineTotal)
}

// El descuento se resta de la base después de calcular el impuesto.
func TestComputeLine_ConDescuento(t *testing.T) {
	got := billing.ComputeLine(dec("1"), dec("50000"), dec("5000"), dec("19"))

	assert.True(t, got.LineExtensionAmount.Equal(dec("50000")))
	assert.True(t, got.TaxAmount.Equal(dec("9500")))
	// 50000 - 5000 + 9500
	assert.True(t, got.LineTotal.Equal(dec("54500")), "total: %s", got.LineTotal)
}

// ComputeLine es una función total: entradas fuera de rango NO producen error,
// solo valores consistentes con la fórmula (los marca Validate después).
func TestComputeLine_ToleraEntradasInvalidas(t *testing.T) {
	got := billing.ComputeLine(dec("-2"), dec("100"), decimal.Zero, decimal.Zero)

	assert.True(t, got.LineExtensionAmount.Equal(dec("-200")), "cantidad negativa produce base negativa")
	assert.True(t, got.LineTotal.Equal(dec("-200")))
}

// Decimal evita el drift binario: 0.1 * 3 es exactamente 0.3.
func TestComputeLine_SinErrorBinario(t *testing.T) {
	got := billing.ComputeLine(dec("3"), dec("0.1"), decimal.Zero, decimal.Zero)
	assert.True(t, got.LineExtensionAmount.Equal(dec("0.3")), "base: %s", got.LineExtensionAmount)
}

// Determinismo: el mismo input produce siempre el mismo output.
func TestComputeLine_Determinista(t *testing.T) {
	a := billing.ComputeLine(dec("7"), dec("13999.99"), dec("350"), dec("19"))
	b := billing.ComputeLine(dec("7"), dec("13999.99"), dec("350"), dec("19"))
	assert.True(t, a.LineTotal.Equal(b.LineTotal))
}

// ──────────────────────────────────────────────────────────────────────────────
// FormatAmount
// ──────────────────────────────────────────────────────────────────────────────

// Ida y vuelta: formatear a string de 2 decimales y parsear de nuevo no puede
// mover el valor más de un centavo.
func TestFormatAmount_IdaYVuelta(t *testing.T) {
	total := billing.ComputeLine(dec("3"), dec("33333.333"), decimal.Zero, dec("19")).LineTotal

	formatted := billing.FormatAmount(total)
	parsed, err := decimal.NewFromString(formatted)
	require.NoError(t, err)

	diff := total.Sub(parsed).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.01")), "diferencia %s supera un centavo", diff)
}

// El formato externo siempre lleva exactamente 2 dígitos fraccionarios.
func TestFormatAmount_DosDecimales(t *testing.T) {
	assert.Equal(t, "238000.00", billing.FormatAmount(dec("238000")))
	assert.Equal(t, "0.30", billing.FormatAmount(dec("0.3")))
	assert.Equal(t, "1234.57", billing.FormatAmount(dec("1234.567")))
}
