package moneypkg

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSellerShare(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		price string
		want  string
	}{
		{"10", "9"},
		{"10.00", "9"},
		{"5.00", "4.5"},
		{"0.05", "0.04"}, // 0.045 floors to 0.04
		{"0.01", "0"},
		{"99.99", "89.99"}, // 89.991 floors to 89.99
		{"1234.56", "1111.1"},
		{"0", "0"},
	}

	for _, tc := range testCases {
		price := decimal.RequireFromString(tc.price)
		want := decimal.RequireFromString(tc.want)

		if got := SellerShare(price); !got.Equal(want) {
			t.Errorf("SellerShare(%v) = %v, want %v", tc.price, got, want)
		}
	}
}

func TestPlatformCutConservation(t *testing.T) {
	t.Parallel()

	prices := []string{"10.00", "0.05", "99.99", "0.01", "123.45", "7"}

	for _, p := range prices {
		price := decimal.RequireFromString(p)

		total := SellerShare(price).Add(PlatformCut(price))
		if !total.Equal(price) {
			t.Errorf("SellerShare(%v) + PlatformCut(%v) = %v, want %v", p, p, total, p)
		}

		if PlatformCut(price).IsNegative() {
			t.Errorf("PlatformCut(%v) = %v, want non-negative", p, PlatformCut(price))
		}
	}
}
