package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary amount to two decimal places, half away from
// zero on the value scaled by 100. Every monetary field stored or returned
// by the pricing code goes through this. Non-finite input normalizes to 0.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// MinorUnits converts an amount to the gateway's smallest denomination
// (paise/cents). The amount is rounded first so 126.50 becomes 12650, never
// 12649 from binary-float drift.
func MinorUnits(x float64) int64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}
