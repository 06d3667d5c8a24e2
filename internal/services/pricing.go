package services

import (
	"github.com/shopspring/decimal"
)

var totalTolerance = decimal.NewFromFloat(0.01)

func lineSubtotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

type orderTotals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// computeTotals derives the monetary breakdown from line subtotals. Tax is rounded to
// two decimals before the discount is subtracted.
func computeTotals(lines []decimal.Decimal, taxRate, discount float64) orderTotals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l)
	}
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	d := decimal.NewFromFloat(discount).Round(2)
	return orderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: d,
		Total:    subtotal.Add(tax).Sub(d),
	}
}

// totalsMatch reports whether a client-supplied total is within one cent of expected.
func totalsMatch(expected decimal.Decimal, supplied float64) bool {
	return expected.Sub(decimal.NewFromFloat(supplied)).Abs().LessThanOrEqual(totalTolerance)
}
