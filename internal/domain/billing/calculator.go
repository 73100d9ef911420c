// Package billing contiene el núcleo de cálculo monetario y validación de
// documentos (facturas, notas crédito y cotizaciones). Toda la aritmética de
// dinero usa shopspring/decimal; el redondeo a 2 decimales ocurre únicamente
// al formatear para la frontera externa (DTO, PDF, XML), nunca en pasos
// intermedios.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/velia-co/crm-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineAmounts montos derivados de una línea.
type LineAmounts struct {
	LineExtensionAmount decimal.Decimal // cantidad * precio unitario
	TaxAmount           decimal.Decimal // base * tarifa / 100
	LineTotal           decimal.Decimal // base - descuento + impuesto
}

// ComputeLine calcula los montos de una línea a partir de cantidad, precio
// unitario, descuento y tarifa de impuesto en porcentaje (19 = 19%).
//
// Es una función total: NO rechaza valores fuera de rango (cantidades
// negativas producen montos negativos); marcar entradas inválidas es
// responsabilidad exclusiva de Validate. Determinista y sin efectos; se puede
// invocar en cada edición de campo sin caché.
func ComputeLine(quantity, unitPrice, discount, taxRatePercent decimal.Decimal) LineAmounts {
	lineExtension := quantity.Mul(unitPrice)
	taxAmount := lineExtension.Mul(taxRatePercent).Div(hundred)
	return LineAmounts{
		LineExtensionAmount: lineExtension,
		TaxAmount:           taxAmount,
		LineTotal:           lineExtension.Sub(discount).Add(taxAmount),
	}
}

// ApplyLine recalcula y escribe los montos derivados sobre la línea.
func ApplyLine(line *entity.LineItem) {
	amounts := ComputeLine(line.Quantity, line.UnitPrice, line.Discount, line.TaxRate)
	line.LineExtensionAmount = amounts.LineExtensionAmount
	line.TaxAmount = amounts.TaxAmount
	line.LineTotal = amounts.LineTotal
}

// FormatAmount formatea un monto para la frontera externa: string decimal con
// exactamente 2 dígitos fraccionarios ("238000.00"), como espera el API.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
