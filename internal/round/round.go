// Package round applies the ledger rounding rules: kilograms carry three
// decimals, money two.
package round

import "math"

// To rounds value half-away-from-zero to the given number of decimals.
func To(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

// Kg rounds a feed mass to three decimals.
func Kg(value float64) float64 {
	return To(value, 3)
}

// Money rounds a cost to two decimals.
func Money(value float64) float64 {
	return To(value, 2)
}
