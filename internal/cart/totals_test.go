package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_SingleLine(t *testing.T) {
	totals := ComputeTotals([]Line{{ProductID: 1, UnitPriceGross: 11.5, Quantity: 2}})

	assert.InDelta(t, 20.00, totals.Subtotal, 1e-9)
	assert.InDelta(t, 3.00, totals.Tax, 1e-9)
	assert.InDelta(t, 23.00, totals.Total, 1e-9)
}

func TestComputeTotals_Empty(t *testing.T) {
	assert.Equal(t, Totals{}, ComputeTotals(nil))
}

func TestComputeTotals_MultipleLines(t *testing.T) {
	lines := []Line{
		{ProductID: 1, UnitPriceGross: 23, Quantity: 1},
		{ProductID: 2, UnitPriceGross: 4.6, Quantity: 5},
	}
	totals := ComputeTotals(lines)

	assert.InDelta(t, 40.00, totals.Subtotal, 1e-9)
	assert.InDelta(t, 6.00, totals.Tax, 1e-9)
	assert.InDelta(t, 46.00, totals.Total, 1e-9)
}

func TestLineFigures_UseDifferentBases(t *testing.T) {
	l := Line{UnitPriceGross: 11.5, Quantity: 2}

	assert.InDelta(t, 10.00, NetUnitPrice(l), 1e-9)
	assert.InDelta(t, 23.00, LineTotal(l), 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 8.7, Round2(8.695652))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 3.0, Round2(2.999))
}
