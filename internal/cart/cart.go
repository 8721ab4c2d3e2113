// Package cart holds the client-side shopping cart transitions. The cart is
// client-authoritative: the backend only sees it at checkout.
//
// Every transition takes the current lines and returns a new slice; inputs are
// never mutated.
package cart

import "github.com/hongminglow/storefront/internal/models"

// Line is one product entry in the cart, keyed by ProductID.
type Line struct {
	ProductID      int64
	Name           string
	UnitPriceGross float64
	Quantity       int
}

// AddResult says what Add did.
type AddResult int

const (
	Added AddResult = iota
	AlreadyInCart
)

// Add appends a line with quantity 1 for p. A product that already has a line
// is left alone: repeated adds do not increment, only SetQuantity does.
func Add(lines []Line, p models.Product) ([]Line, AddResult) {
	if Find(lines, p.ID) >= 0 {
		return lines, AlreadyInCart
	}
	out := make([]Line, len(lines), len(lines)+1)
	copy(out, lines)
	out = append(out, Line{
		ProductID:      p.ID,
		Name:           p.Name,
		UnitPriceGross: p.Price.Float(),
		Quantity:       1,
	})
	return out, Added
}

// SetQuantity replaces the quantity of the line for id. Quantities below 1 and
// ids not in the cart are reported with ok=false; the lines are returned unchanged.
func SetQuantity(lines []Line, id int64, quantity int) ([]Line, bool) {
	if quantity < 1 || Find(lines, id) < 0 {
		return lines, false
	}
	out := make([]Line, len(lines))
	for i, l := range lines {
		if l.ProductID == id {
			l.Quantity = quantity
		}
		out[i] = l
	}
	return out, true
}

// Remove drops the line for id. Removing an id that is not in the cart is a no-op.
func Remove(lines []Line, id int64) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != id {
			out = append(out, l)
		}
	}
	return out
}

// Clear returns an empty cart.
func Clear() []Line {
	return []Line{}
}

// Find returns the index of the line for id, or -1.
func Find(lines []Line, id int64) int {
	for i, l := range lines {
		if l.ProductID == id {
			return i
		}
	}
	return -1
}

// Count is the number of lines, not units.
func Count(lines []Line) int {
	return len(lines)
}
