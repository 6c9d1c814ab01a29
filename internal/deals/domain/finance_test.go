package domain

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCommissionUsesFinalPriceWhenSet(t *testing.T) {
	deal := Deal{
		VehiclePrice:   200000,
		FinalPrice:     floatPtr(190000),
		CommissionRate: 0.01,
	}

	if got := Commission(deal); !almostEqual(got, 1900) {
		t.Fatalf("Commission = %v, want 1900", got)
	}
}

func TestCommissionFallsBackToVehiclePrice(t *testing.T) {
	deal := Deal{
		VehiclePrice:   200000,
		CommissionRate: 0.01,
	}

	if got := Commission(deal); !almostEqual(got, 2000) {
		t.Fatalf("Commission = %v, want 2000", got)
	}
}

func TestCommissionZeroWithoutRate(t *testing.T) {
	deal := Deal{VehiclePrice: 50000, FinalPrice: floatPtr(48000)}

	if got := Commission(deal); got != 0 {
		t.Fatalf("Commission = %v, want 0", got)
	}
}

func TestExpectedCommissionWeightsByProbability(t *testing.T) {
	deal := Deal{
		VehiclePrice:   100000,
		CommissionRate: 0.02,
		Probability:    75,
	}

	if got := ExpectedCommission(deal); !almostEqual(got, 1500) {
		t.Fatalf("ExpectedCommission = %v, want 1500", got)
	}
}

func TestDiscountAmount(t *testing.T) {
	cases := []struct {
		name string
		deal Deal
		want float64
	}{
		{"final below asking", Deal{VehiclePrice: 200000, FinalPrice: floatPtr(190000)}, 10000},
		{"no final price", Deal{VehiclePrice: 200000}, 0},
		{"sold above asking", Deal{VehiclePrice: 200000, FinalPrice: floatPtr(210000)}, 0},
	}

	for _, tc := range cases {
		if got := DiscountAmount(tc.deal); !almostEqual(got, tc.want) {
			t.Errorf("%s: DiscountAmount = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDiscountPercentage(t *testing.T) {
	deal := Deal{VehiclePrice: 200000, FinalPrice: floatPtr(190000)}
	if got := DiscountPercentage(deal); !almostEqual(got, 5.0) {
		t.Fatalf("DiscountPercentage = %v, want 5.0", got)
	}

	// Display-only metric: zero asking price yields 0, not an error or NaN.
	zero := Deal{VehiclePrice: 0, FinalPrice: floatPtr(100)}
	if got := DiscountPercentage(zero); got != 0 {
		t.Fatalf("DiscountPercentage with zero asking price = %v, want 0", got)
	}
	if math.IsNaN(DiscountPercentage(zero)) {
		t.Fatal("DiscountPercentage must never be NaN")
	}
}
