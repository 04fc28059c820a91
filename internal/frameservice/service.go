// Package frameservice manages business logic layer of avatar frames.
package frameservice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gamevault/gamevault/internal/domain"
)

// Repo provides data access layer interface needed by frame service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package frameservice
type Repo interface {
	Create(ctx context.Context, name string, price decimal.Decimal, imageURL string) (domain.Frame, error)
	Get(ctx context.Context, id int32) (domain.Frame, error)
	List(ctx context.Context) ([]domain.Frame, error)
	ListOwned(ctx context.Context, userID int32) ([]domain.OwnedFrame, error)
	Buy(ctx context.Context, userID, frameID int32) (domain.FramePurchaseResult, error)
	SetActive(ctx context.Context, userID, frameID int32) error
}

// Service facilitates frame service layer logic.
type Service struct {
	repo Repo
}

// New returns frame service struct to manage frame business logic.
func New(fr Repo) *Service {
	return &Service{repo: fr}
}

// Create adds a frame to the store catalog.
func (s *Service) Create(ctx context.Context, name string, price decimal.Decimal, imageURL string) (domain.Frame, error) {
	return s.repo.Create(ctx, name, price, imageURL)
}

// Get returns the frame with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Frame, error) {
	return s.repo.Get(ctx, id)
}

// List returns the full frame catalog, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Frame, error) {
	return s.repo.List(ctx)
}

// ListOwned returns the frames the user owns with their equipped state.
func (s *Service) ListOwned(ctx context.Context, userID int32) ([]domain.OwnedFrame, error) {
	return s.repo.ListOwned(ctx, userID)
}

// Buy purchases the frame from the store at catalog price.
func (s *Service) Buy(ctx context.Context, userID, frameID int32) (domain.FramePurchaseResult, error) {
	return s.repo.Buy(ctx, userID, frameID)
}

// SetActive equips the owned frame for the user, unequipping any other.
func (s *Service) SetActive(ctx context.Context, userID, frameID int32) error {
	return s.repo.SetActive(ctx, userID, frameID)
}
