package util

import "testing"

func TestRoundCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   float64
		expected float64
	}{
		{name: "exact value", amount: 22.79, expected: 22.79},
		{name: "rounds down below half cent", amount: 0.501, expected: 0.50},
		{name: "fractional cashback rounds down", amount: 10.003 * 0.05, expected: 0.50},
		{name: "half cent rounds up", amount: 1.005, expected: 1.01},
		{name: "scenario cashback", amount: 22.79 * 0.05, expected: 1.14},
		{name: "above half cent rounds up", amount: 2.349, expected: 2.35},
		{name: "zero", amount: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RoundCurrency(tt.amount); got != tt.expected {
				t.Fatalf("RoundCurrency(%v) = %v, want %v", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestFormatBRL(t *testing.T) {
	t.Parallel()

	if got := FormatBRL(22.79); got != "R$ 22,79" {
		t.Fatalf("FormatBRL(22.79) = %s, want R$ 22,79", got)
	}
	if got := FormatBRL(1.1395); got != "R$ 1,14" {
		t.Fatalf("FormatBRL(1.1395) = %s, want R$ 1,14", got)
	}
}
