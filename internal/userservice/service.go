// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/pkg/errorspkg"
	"github.com/gamevault/gamevault/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id int32) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Search(ctx context.Context, username string) ([]domain.PublicProfile, error)
	List(ctx context.Context) ([]domain.UserWithoutPassword, error)
	UpdateProfile(ctx context.Context, arg domain.UpdateProfileParams) (domain.User, error)
	SetVerified(ctx context.Context, id int32, verified bool) error
	SetBanned(ctx context.Context, id int32, banned bool) error
	SetBalance(ctx context.Context, id int32, balance decimal.Decimal) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// NewUserWithoutPassword returns user with removed credential data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Balance:     u.Balance,
		Role:        u.Role,
		IsVerified:  u.IsVerified,
		IsBanned:    u.IsBanned,
	}
}

// NewProfile returns the profile page projection of the user.
func NewProfile(u domain.User) domain.Profile {
	return domain.Profile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Balance:     u.Balance,
		Role:        u.Role,
		IsVerified:  u.IsVerified,
		IsBanned:    u.IsBanned,
		HoursOnline: u.HoursOnline,
	}
}

// Register creates a user with a hashed password, zero balance and default flags.
func (s *Service) Register(ctx context.Context, email, password, username string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Email:          email,
		HashedPassword: hashedPassword,
		Username:       username,
		DisplayName:    username,
	}

	created, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	return NewUserWithoutPassword(created), nil
}

// Login checks the credentials and returns the matching user.
//
// A missing user and a wrong password are indistinguishable to the caller.
// Banned users are rejected even with valid credentials.
func (s *Service) Login(ctx context.Context, email, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return result, domain.ErrInvalidCredentials
		}

		return result, err
	}

	if err := passpkg.Check(password, user.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return result, domain.ErrInvalidCredentials
	}

	if user.IsBanned {
		return result, domain.ErrUserBanned
	}

	return NewUserWithoutPassword(user), nil
}

// Get returns the profile of the user with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Profile, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}

	return NewProfile(user), nil
}

// Search returns public profiles matching the username substring.
func (s *Service) Search(ctx context.Context, username string) ([]domain.PublicProfile, error) {
	return s.repo.Search(ctx, username)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]domain.UserWithoutPassword, error) {
	return s.repo.List(ctx)
}

// UpdateProfile overwrites the mutable profile fields and returns the updated user.
func (s *Service) UpdateProfile(ctx context.Context, arg domain.UpdateProfileParams) (domain.UserWithoutPassword, error) {
	user, err := s.repo.UpdateProfile(ctx, arg)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return NewUserWithoutPassword(user), nil
}

// SetVerified overwrites the verification flag of the user.
func (s *Service) SetVerified(ctx context.Context, id int32, verified bool) error {
	return s.repo.SetVerified(ctx, id, verified)
}

// SetBanned overwrites the ban flag of the user.
func (s *Service) SetBanned(ctx context.Context, id int32, banned bool) error {
	return s.repo.SetBanned(ctx, id, banned)
}

// SetBalance overwrites the user's balance and returns the updated user.
func (s *Service) SetBalance(ctx context.Context, id int32, balance decimal.Decimal) (domain.UserWithoutPassword, error) {
	user, err := s.repo.SetBalance(ctx, id, balance)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return NewUserWithoutPassword(user), nil
}
