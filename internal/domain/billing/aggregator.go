package billing

import (
	"github.com/shopspring/decimal"

	"github.com/velia-co/crm-api/internal/domain/entity"
)

// AggregateLines pliega las líneas en los totales del documento y en un
// TaxTotal por cada tarifa de impuesto distinta (en orden de aparición).
//
// Los montos por línea se recalculan siempre con ComputeLine a partir de
// cantidad/precio/descuento/tarifa, ignorando cualquier valor cacheado en la
// línea: el agregado nunca puede quedar inconsistente con sus entradas.
// Con cero líneas retorna totales en cero y ningún TaxTotal; ese estado
// intermedio es válido durante el borrador y lo rechaza Validate al emitir.
// O(n) en el número de líneas.
func AggregateLines(lines []entity.LineItem) (entity.MonetaryTotals, []entity.TaxTotal) {
	lineExtension := decimal.Zero
	taxTotal := decimal.Zero

	var rates []decimal.Decimal
	byRate := make(map[string]*entity.TaxTotal)

	for i := range lines {
		amounts := ComputeLine(lines[i].Quantity, lines[i].UnitPrice, lines[i].Discount, lines[i].TaxRate)
		lineExtension = lineExtension.Add(amounts.LineExtensionAmount)
		taxTotal = taxTotal.Add(amounts.TaxAmount)

		key := lines[i].TaxRate.String()
		entry, ok := byRate[key]
		if !ok {
			byRate[key] = &entity.TaxTotal{
				Percent:       lines[i].TaxRate,
				TaxableAmount: amounts.LineExtensionAmount,
				TaxAmount:     amounts.TaxAmount,
			}
			rates = append(rates, lines[i].TaxRate)
			continue
		}
		entry.TaxableAmount = entry.TaxableAmount.Add(amounts.LineExtensionAmount)
		entry.TaxAmount = entry.TaxAmount.Add(amounts.TaxAmount)
	}

	totals := entity.MonetaryTotals{
		LineExtensionAmount: lineExtension,
		TaxExclusiveAmount:  lineExtension,
		TaxInclusiveAmount:  lineExtension.Add(taxTotal),
		PayableAmount:       lineExtension.Add(taxTotal),
	}

	taxTotals := make([]entity.TaxTotal, 0, len(rates))
	for _, rate := range rates {
		taxTotals = append(taxTotals, *byRate[rate.String()])
	}
	return totals, taxTotals
}
