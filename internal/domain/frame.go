package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrFrameNotFound indicates that the frame is not found.
	ErrFrameNotFound = errors.New("frame not found")
	// ErrFrameNotOwned indicates that the user does not own the frame.
	ErrFrameNotOwned = errors.New("frame is not owned by the user")
)

// Frame holds an avatar frame catalog entry.
type Frame struct {
	ID        int32           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	CreatedAt time.Time       `json:"created_at"`
}

// OwnedFrame is a frame owned by a user together with its equipped state.
// At most one owned frame per user is active.
type OwnedFrame struct {
	ID       int32           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	IsActive bool            `json:"is_active"`
}

// FramePurchaseResult is the result of a store frame purchase.
type FramePurchaseResult struct {
	Frame        Frame           `json:"frame"`
	BuyerID      int32           `json:"buyer_id"`
	BuyerBalance decimal.Decimal `json:"buyer_balance"`
}
