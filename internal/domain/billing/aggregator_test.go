package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velia-co/crm-api/internal/domain/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
)

func line(qty, price, discount, rate string) entity.LineItem {
	return entity.LineItem{
		Quantity:  dec(qty),
		UnitPrice: dec(price),
		Discount:  dec(discount),
		TaxRate:   dec(rate),
	}
}

// Sin líneas, todos los totales quedan en cero y no hay totales de impuesto.
// Es un estado intermedio válido del borrador; Validate lo rechaza al emitir.
func TestAggregateLines_Vacio(t *testing.T) {
	totals, taxTotals := billing.AggregateLines(nil)

	assert.True(t, totals.LineExtensionAmount.IsZero())
	assert.True(t, totals.TaxExclusiveAmount.IsZero())
	assert.True(t, totals.TaxInclusiveAmount.IsZero())
	assert.True(t, totals.PayableAmount.IsZero())
	assert.Empty(t, taxTotals)
}

// Vector de referencia: una línea de 2 x 100.000 con IVA 19%.
func TestAggregateLines_UnaLinea(t *testing.T) {
	totals, taxTotals := billing.AggregateLines([]entity.LineItem{
		line("2", "100000", "0", "19"),
	})

	assert.True(t, totals.LineExtensionAmount.Equal(dec("200000")), "base: %s", totals.LineExtensionAmount)
	assert.True(t, totals.TaxExclusiveAmount.Equal(dec("200000")))
	assert.True(t, totals.TaxInclusiveAmount.Equal(dec("238000")), "con IVA: %s", totals.TaxInclusiveAmount)
	assert.True(t, totals.PayableAmount.Equal(dec("238000")))

	require.Len(t, taxTotals, 1)
	assert.True(t, taxTotals[0].Percent.Equal(dec("19")))
	assert.True(t, taxTotals[0].TaxableAmount.Equal(dec("200000")))
	assert.True(t, taxTotals[0].TaxAmount.Equal(dec("38000")))
}

// Las líneas se agrupan por tarifa distinta: un TaxTotal por cada tarifa, en
// orden de aparición, con base e impuesto sumados por grupo.
func TestAggregateLines_AgrupaPorTarifa(t *testing.T) {
	totals, taxTotals := billing.AggregateLines([]entity.LineItem{
		line("1", "100000", "0", "19"),
		line("2", "50000", "0", "5"),
		line("1", "100000", "0", "19"), // misma tarifa que la primera
		line("4", "10000", "0", "0"),
	})

	// base = 100000 + 100000 + 100000 + 40000 = 340000
	assert.True(t, totals.LineExtensionAmount.Equal(dec("340000")), "base: %s", totals.LineExtensionAmount)
	// IVA = 19000 + 5000 + 19000 + 0 = 43000
	assert.True(t, totals.TaxInclusiveAmount.Equal(dec("383000")), "con IVA: %s", totals.TaxInclusiveAmount)

	require.Len(t, taxTotals, 3)
	assert.True(t, taxTotals[0].Percent.Equal(dec("19")))
	assert.True(t, taxTotals[0].TaxableAmount.Equal(dec("200000")))
	assert.True(t, taxTotals[0].TaxAmount.Equal(dec("38000")))
	assert.True(t, taxTotals[1].Percent.Equal(dec("5")))
	assert.True(t, taxTotals[1].TaxAmount.Equal(dec("5000")))
	assert.True(t, taxTotals[2].Percent.Equal(dec("0")))
	assert.True(t, taxTotals[2].TaxAmount.IsZero())
}

// El agregado ignora montos cacheados en la línea: siempre recalcula desde
// cantidad/precio/descuento/tarifa, así no puede divergir de sus entradas.
func TestAggregateLines_IgnoraMontosCacheados(t *testing.T) {
	l := line("2", "100000", "0", "19")
	l.LineExtensionAmount = dec("999999") // valor corrupto deliberado

	totals, _ := billing.AggregateLines([]entity.LineItem{l})
	assert.True(t, totals.LineExtensionAmount.Equal(dec("200000")))
}

// Invariante: para entradas válidas PayableAmount >= TaxExclusiveAmount.
func TestAggregateLines_PayableNoMenorQueBase(t *testing.T) {
	totals, _ := billing.AggregateLines([]entity.LineItem{
		line("3", "12999.99", "0", "19"),
		line("1", "5000", "0", "5"),
	})
	assert.True(t, totals.PayableAmount.GreaterThanOrEqual(totals.TaxExclusiveAmount))
}
