package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrListingNotFound indicates that the listing is missing or no longer active.
	ErrListingNotFound = errors.New("listing not found")
	// ErrInsufficientBalance indicates that the buyer cannot afford the purchase.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Listing is a marketplace offer of one item at a fixed price.
type Listing struct {
	ID        int32           `json:"id"`
	SellerID  int32           `json:"seller_id"`
	ItemType  string          `json:"item_type"`
	ItemID    int32           `json:"item_id"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateListingParams is the input data to put an item up for sale.
type CreateListingParams struct {
	SellerID int32
	ItemType string
	ItemID   int32
	Price    decimal.Decimal
}

// ListingDetail is a listing joined with seller and item display metadata.
type ListingDetail struct {
	ID             int32           `json:"id"`
	SellerID       int32           `json:"seller_id"`
	ItemType       string          `json:"item_type"`
	ItemID         int32           `json:"item_id"`
	Price          decimal.Decimal `json:"price"`
	SellerUsername string          `json:"seller_username"`
	ItemName       string          `json:"item_name"`
	ItemImage      string          `json:"item_image"`
}

// PurchaseReceipt is the result of a successful marketplace purchase.
type PurchaseReceipt struct {
	ListingID     int32           `json:"listing_id"`
	ItemType      string          `json:"item_type"`
	ItemID        int32           `json:"item_id"`
	Price         decimal.Decimal `json:"price"`
	SellerShare   decimal.Decimal `json:"seller_share"`
	BuyerID       int32           `json:"buyer_id"`
	SellerID      int32           `json:"seller_id"`
	BuyerBalance  decimal.Decimal `json:"buyer_balance"`
	SellerBalance decimal.Decimal `json:"seller_balance"`
}
