// Package marketservice manages business logic layer of the peer marketplace.
package marketservice

import (
	"context"

	"github.com/gamevault/gamevault/internal/domain"
)

// Repo provides data access layer interface needed by marketplace service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package marketservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateListingParams) (domain.Listing, error)
	Get(ctx context.Context, id int32) (domain.Listing, error)
	ListActive(ctx context.Context) ([]domain.ListingDetail, error)
	Purchase(ctx context.Context, listingID, buyerID int32) (domain.PurchaseReceipt, error)
}

// Service facilitates marketplace service layer logic.
type Service struct {
	repo Repo
}

// New returns marketplace service struct to manage marketplace business logic.
func New(mr Repo) *Service {
	return &Service{repo: mr}
}

// Sell puts an item up for sale at a fixed price.
func (s *Service) Sell(ctx context.Context, arg domain.CreateListingParams) (domain.Listing, error) {
	return s.repo.Create(ctx, arg)
}

// Get returns the listing with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Listing, error) {
	return s.repo.Get(ctx, id)
}

// ListActive returns all active listings with display metadata.
func (s *Service) ListActive(ctx context.Context) ([]domain.ListingDetail, error) {
	return s.repo.ListActive(ctx)
}

// Buy purchases the listing for the buyer.
func (s *Service) Buy(ctx context.Context, listingID, buyerID int32) (domain.PurchaseReceipt, error) {
	return s.repo.Purchase(ctx, listingID, buyerID)
}
