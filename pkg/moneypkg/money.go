// Package moneypkg provides marketplace money arithmetic.
package moneypkg

import "github.com/shopspring/decimal"

// sellerRate is the share of every marketplace sale paid out to the seller.
// The remaining 10% is the platform cut.
var sellerRate = decimal.NewFromFloat(0.9)

// SellerShare returns the seller payout for the given sale price.
//
// The payout is price * 0.9 floored at cent precision, so the platform
// never pays out a fraction of a cent the buyer did not spend.
func SellerShare(price decimal.Decimal) decimal.Decimal {
	return price.Mul(sellerRate).RoundDown(2)
}

// PlatformCut returns the part of the sale price the platform retains.
//
// It is the exact remainder of the sale after the seller payout, so
// SellerShare(p) + PlatformCut(p) == p for any price p.
func PlatformCut(price decimal.Decimal) decimal.Decimal {
	return price.Sub(SellerShare(price))
}
