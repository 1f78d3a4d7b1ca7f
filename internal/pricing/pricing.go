// Package pricing computes cart totals from line items. It is pure: no I/O,
// no clock, same input always yields the same output, so the client and the
// server can recompute independently and agree.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/suhail1malik/EcommerceStore/internal/domain"
)

const (
	TaxRate           = 0.15
	ShippingThreshold = 100
	ShippingFlat      = 10
)

// ComputeTotals derives the four monetary fields from the line items.
// Missing or malformed price/qty contribute 0 rather than failing; this runs
// synchronously inside cart mutation paths and must never error.
func ComputeTotals(items []domain.LineItem) domain.Totals {
	sum := decimal.Zero
	for _, it := range items {
		if it.Qty < 1 {
			continue
		}
		if it.Price < 0 || math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
			continue
		}
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Qty)))
		sum = sum.Add(line)
	}

	itemsPrice, _ := sum.Round(2).Float64()

	shippingPrice := float64(ShippingFlat)
	if itemsPrice > ShippingThreshold {
		shippingPrice = 0
	}

	taxPrice := domain.Round2(TaxRate * itemsPrice)
	totalPrice := domain.Round2(itemsPrice + shippingPrice + taxPrice)

	return domain.Totals{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shippingPrice,
		TaxPrice:      taxPrice,
		TotalPrice:    totalPrice,
	}
}
