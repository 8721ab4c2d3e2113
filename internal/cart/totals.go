package cart

import "math"

// TaxRate is the VAT already included in every gross unit price.
const TaxRate = 0.15

// Totals is the cart summary shown above the checkout button.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeTotals un-grosses every line before summing:
//
//	subtotal = Σ (gross / (1+TaxRate)) * qty
//	tax      = subtotal * TaxRate
//	total    = subtotal + tax
func ComputeTotals(lines []Line) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += NetUnitPrice(l) * float64(l.Quantity)
	}
	tax := subtotal * TaxRate
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// NetUnitPrice is the pre-tax unit price displayed next to each line.
func NetUnitPrice(l Line) float64 {
	return l.UnitPriceGross / (1 + TaxRate)
}

// LineTotal is gross unit price times quantity. It stays on the
// gross basis while NetUnitPrice is on the net one.
func LineTotal(l Line) float64 {
	return l.UnitPriceGross * float64(l.Quantity)
}

// Round2 rounds half away from zero to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
