package orders

import "math"

const (
	TaxRate = 0.08
	FeeRate = 0.05
)

// RoundMoney rounds to two decimal places, half up, so a boundary amount
// like 10.005 settles to 10.01. The epsilon compensates for binary floats
// representing such amounts a hair below the true value.
func RoundMoney(v float64) float64 {
	return math.Floor(v*100+0.5+1e-9) / 100
}

type OrderTotals struct {
	Subtotal float64
	Tax      float64
	Fees     float64
	Total    float64
}

// ComputeTotals derives tax and fees from the subtotal. Each component is
// rounded independently and the total is the sum of the rounded parts, so
// the stored breakdown always adds up.
func ComputeTotals(subtotal float64) OrderTotals {
	sub := RoundMoney(subtotal)
	tax := RoundMoney(sub * TaxRate)
	fees := RoundMoney(sub * FeeRate)
	return OrderTotals{
		Subtotal: sub,
		Tax:      tax,
		Fees:     fees,
		Total:    RoundMoney(sub + tax + fees),
	}
}
