// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/internal/framerepo"
	"github.com/gamevault/gamevault/internal/gamerepo"
	"github.com/gamevault/gamevault/internal/marketrepo"
	"github.com/gamevault/gamevault/internal/userrepo"
	"github.com/gamevault/gamevault/pkg/dbpkg"
	"github.com/gamevault/gamevault/pkg/passpkg"
	"github.com/gamevault/gamevault/pkg/randompkg"
)

// SeedUser creates a random user inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	username := randompkg.Username()

	arg := domain.CreateUserParams{
		Email:          randompkg.Email(),
		HashedPassword: hashedPassword,
		Username:       username,
		DisplayName:    username,
	}

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedUserWithBalance creates a random user and tops up the balance.
func SeedUserWithBalance(t *testing.T, tx dbpkg.SQLInterface, balance string) domain.User {
	t.Helper()

	user := SeedUser(t, tx)

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.SetBalance(context.Background(), user.ID, decimal.RequireFromString(balance))
	if err != nil {
		t.Fatalf("userRepo.SetBalance(context.Background(), %v, %v) returned error: %v",
			user.ID, balance, err)
	}

	return user
}

// SeedGame creates a random pending game inside a test transaction.
func SeedGame(t *testing.T, tx dbpkg.SQLInterface, publisherUsername string) domain.Game {
	t.Helper()

	arg := domain.CreateGameParams{
		Title:             randompkg.String(12),
		Description:       randompkg.String(40),
		Price:             randompkg.PriceBetween(1, 100),
		DeveloperEmail:    randompkg.Email(),
		Genre:             "arcade",
		AgeRating:         "12+",
		FileURL:           randompkg.ImageURL(),
		LogoURL:           randompkg.ImageURL(),
		Screenshots:       []string{randompkg.ImageURL(), randompkg.ImageURL()},
		PublisherUsername: publisherUsername,
	}

	gameRepo := gamerepo.NewRepoPGS(tx)

	game, err := gameRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("gameRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return game
}

// SeedFrame creates a random frame inside a test transaction.
func SeedFrame(t *testing.T, tx dbpkg.SQLInterface) domain.Frame {
	t.Helper()

	name := randompkg.String(10)
	price := randompkg.PriceBetween(1, 50)
	imageURL := randompkg.ImageURL()

	frameRepo := framerepo.NewTxRepoPGS(tx)

	frame, err := frameRepo.Create(context.Background(), name, price, imageURL)
	if err != nil {
		t.Fatalf("frameRepo.Create(context.Background(), %v, %v, %v) returned error: %v",
			name, price, imageURL, err)
	}

	return frame
}

// SeedListing creates an active listing inside a test transaction.
func SeedListing(t *testing.T, tx dbpkg.SQLInterface, arg domain.CreateListingParams) domain.Listing {
	t.Helper()

	marketRepo := marketrepo.NewTxRepoPGS(tx)

	listing, err := marketRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("marketRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return listing
}
