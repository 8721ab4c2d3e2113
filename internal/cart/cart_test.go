package cart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/storefront/internal/models"
)

func product(id int64, price float64) models.Product {
	return models.Product{ID: id, Name: "item", Price: models.Number(price)}
}

func TestAdd_NewLineStartsAtOne(t *testing.T) {
	lines, res := Add(nil, product(1, 11.5))
	require.Len(t, lines, 1)
	assert.Equal(t, Added, res)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 11.5, lines[0].UnitPriceGross)
}

func TestAdd_RepeatDoesNotIncrement(t *testing.T) {
	lines, _ := Add(nil, product(1, 10))
	lines, _ = SetQuantity(lines, 1, 3)

	again, res := Add(lines, product(1, 10))
	assert.Equal(t, AlreadyInCart, res)
	require.Len(t, again, 1)
	assert.Equal(t, 3, again[0].Quantity)
}

func TestAdd_AtMostOneLinePerProduct(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var lines []Line
	for i := 0; i < 500; i++ {
		lines, _ = Add(lines, product(int64(r.Intn(12)), 5))
	}
	seen := map[int64]bool{}
	for _, l := range lines {
		assert.False(t, seen[l.ProductID], "duplicate line for product %d", l.ProductID)
		seen[l.ProductID] = true
	}
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	base := make([]Line, 1, 4)
	base[0] = Line{ProductID: 1, Quantity: 1}
	_, _ = Add(base, product(2, 1))
	assert.Len(t, base, 1)
	assert.Equal(t, Line{}, base[:2][1], "spare capacity must not be written")
}

func TestSetQuantity(t *testing.T) {
	lines, _ := Add(nil, product(1, 10))
	lines, _ = Add(lines, product(2, 20))

	for _, q := range []int{0, -1, -100} {
		got, ok := SetQuantity(lines, 1, q)
		assert.False(t, ok)
		assert.Equal(t, 1, got[0].Quantity, "quantity %d must be rejected", q)
	}

	got, ok := SetQuantity(lines, 2, 5)
	require.True(t, ok)
	assert.Equal(t, 1, got[0].Quantity)
	assert.Equal(t, 5, got[1].Quantity)
	assert.Equal(t, 1, lines[1].Quantity, "input untouched")
}

func TestSetQuantity_UnknownProduct(t *testing.T) {
	lines, _ := Add(nil, product(1, 10))

	got, ok := SetQuantity(lines, 99, 4)
	assert.False(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	lines, _ := Add(nil, product(1, 10))
	lines, _ = Add(lines, product(2, 20))

	assert.Len(t, Remove(lines, 99), 2)
	left := Remove(lines, 1)
	require.Len(t, left, 1)
	assert.Equal(t, int64(2), left[0].ProductID)
	assert.Equal(t, 1, Count(left))

	assert.Empty(t, Clear())
	assert.NotNil(t, Clear())
}
