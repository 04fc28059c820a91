// Package gameservice manages business logic layer of games.
package gameservice

import (
	"context"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/pkg/catalogpkg"
)

// Repo provides data access layer interface needed by game service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package gameservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateGameParams) (domain.Game, error)
	Get(ctx context.Context, id int32) (domain.Game, error)
	List(ctx context.Context, status string) ([]domain.Game, error)
	SetStatus(ctx context.Context, id int32, status string) error
	SetFeatured(ctx context.Context, id int32, featured bool) error
}

// Service facilitates game service layer logic.
type Service struct {
	repo Repo
}

// New returns game service struct to manage game business logic.
func New(gr Repo) *Service {
	return &Service{repo: gr}
}

// Create publishes a game for moderation and returns it with status pending.
func (s *Service) Create(ctx context.Context, arg domain.CreateGameParams) (domain.Game, error) {
	return s.repo.Create(ctx, arg)
}

// Get returns the game with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Game, error) {
	return s.repo.Get(ctx, id)
}

// List returns games with the given moderation status, newest first.
func (s *Service) List(ctx context.Context, status string) ([]domain.Game, error) {
	return s.repo.List(ctx, status)
}

// Approve marks the game approved and eligible for ownership.
func (s *Service) Approve(ctx context.Context, id int32) error {
	return s.repo.SetStatus(ctx, id, catalogpkg.StatusApproved)
}

// Reject marks the game rejected. No further transitions are defined from rejected.
func (s *Service) Reject(ctx context.Context, id int32) error {
	return s.repo.SetStatus(ctx, id, catalogpkg.StatusRejected)
}

// SetFeatured overwrites the featured flag of the game.
func (s *Service) SetFeatured(ctx context.Context, id int32, featured bool) error {
	return s.repo.SetFeatured(ctx, id, featured)
}
