package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suhail1malik/EcommerceStore/internal/domain"
)

func item(price float64, qty int) domain.LineItem {
	return domain.LineItem{ProductID: "p", Price: price, Qty: qty}
}

func TestComputeTotalsFreeShippingOrder(t *testing.T) {
	totals := ComputeTotals([]domain.LineItem{item(60, 1), item(50, 1)})

	assert.Equal(t, 110.00, totals.ItemsPrice)
	assert.Equal(t, 0.0, totals.ShippingPrice)
	assert.Equal(t, 16.50, totals.TaxPrice)
	assert.Equal(t, 126.50, totals.TotalPrice)
}

func TestComputeTotalsFlatShippingOrder(t *testing.T) {
	totals := ComputeTotals([]domain.LineItem{item(30, 2)})

	assert.Equal(t, 60.00, totals.ItemsPrice)
	assert.Equal(t, 10.0, totals.ShippingPrice)
	assert.Equal(t, 9.00, totals.TaxPrice)
	assert.Equal(t, 79.00, totals.TotalPrice)
}

func TestComputeTotalsShippingBoundary(t *testing.T) {
	// Exactly 100 still pays flat shipping; one cent over does not.
	at := ComputeTotals([]domain.LineItem{item(100.00, 1)})
	assert.Equal(t, 10.0, at.ShippingPrice)

	over := ComputeTotals([]domain.LineItem{item(100.01, 1)})
	assert.Equal(t, 0.0, over.ShippingPrice)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.Equal(t, 0.0, totals.ItemsPrice)
	assert.Equal(t, 10.0, totals.ShippingPrice)
	assert.Equal(t, 0.0, totals.TaxPrice)
	assert.Equal(t, 10.0, totals.TotalPrice)
}

func TestComputeTotalsSkipsBadContributions(t *testing.T) {
	items := []domain.LineItem{
		item(30, 2),
		item(-5, 1),          // negative price
		item(10, 0),          // zero qty
		item(math.NaN(), 3),  // non-finite
		item(math.Inf(1), 1), // non-finite
	}
	totals := ComputeTotals(items)

	assert.Equal(t, 60.00, totals.ItemsPrice)
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	items := []domain.LineItem{
		{ProductID: "a", Price: 19.99, Qty: 3},
		{ProductID: "b", Price: 0.01, Qty: 7},
		{ProductID: "c", Price: 42.45, Qty: 1},
		{ProductID: "d", Price: 5, Qty: 2},
	}
	want := ComputeTotals(items)

	for i := 0; i < 10; i++ {
		shuffled := append([]domain.LineItem(nil), items...)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, ComputeTotals(shuffled))
	}
}

func TestComputeTotalsDeterministic(t *testing.T) {
	items := []domain.LineItem{item(33.33, 3), item(0.07, 11)}
	assert.Equal(t, ComputeTotals(items), ComputeTotals(items))
}

func TestComputeTotalsAvoidsFloatArtifacts(t *testing.T) {
	// 0.1 + 0.2 style drift must not leak into itemsPrice.
	totals := ComputeTotals([]domain.LineItem{item(0.1, 1), item(0.2, 1)})
	assert.Equal(t, 0.30, totals.ItemsPrice)
}
