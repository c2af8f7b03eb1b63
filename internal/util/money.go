package util

import (
	"fmt"
	"math"
	"strings"
)

// RoundCurrency rounds a non-negative amount to 2 decimal places using
// standard currency rounding (half-up).
func RoundCurrency(amount float64) float64 {
	// Nudge by an epsilon before rounding so values sitting a hair below the
	// half boundary from binary representation (e.g. 1.005 stored as
	// 1.00499999...) still round up.
	cents := amount*100 + 1e-9

	return math.Floor(cents+0.5) / 100
}

// FormatBRL formats an amount as Brazilian currency, e.g. "R$ 22,79".
func FormatBRL(amount float64) string {
	s := fmt.Sprintf("%.2f", RoundCurrency(amount))

	return "R$ " + strings.Replace(s, ".", ",", 1)
}
