package test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/pkg/catalogpkg"
	"github.com/gamevault/gamevault/pkg/randompkg"
)

// RandomUser returns a random account with the given username.
func RandomUser(username string) domain.User {
	return domain.User{
		ID:          randompkg.Int32Between(1, 100),
		Email:       randompkg.Email(),
		Username:    username,
		DisplayName: username,
		AvatarURL:   randompkg.ImageURL(),
		Balance:     randompkg.PriceBetween(100, 1000),
		Role:        catalogpkg.RoleUser,
		CreatedAt:   time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomGame returns a random approved game published by the given username.
func RandomGame(publisherUsername string) domain.Game {
	return domain.Game{
		ID:                randompkg.Int32Between(1, 100),
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
		Status:            catalogpkg.StatusApproved,
		CreatedAt:         time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomFrame returns a random store frame.
func RandomFrame() domain.Frame {
	return domain.Frame{
		ID:        randompkg.Int32Between(1, 100),
		Name:      randompkg.String(10),
		Price:     randompkg.PriceBetween(1, 50),
		ImageURL:  randompkg.ImageURL(),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomListing returns a random active game listing by the given seller.
func RandomListing(sellerID, itemID int32) domain.Listing {
	return domain.Listing{
		ID:        randompkg.Int32Between(1, 100),
		SellerID:  sellerID,
		ItemType:  catalogpkg.ItemTypeGame,
		ItemID:    itemID,
		Price:     randompkg.PriceBetween(1, 100),
		Status:    catalogpkg.ListingActive,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomReceipt returns a purchase receipt consistent with the listing.
func RandomReceipt(lst domain.Listing, buyerID int32) domain.PurchaseReceipt {
	sellerShare := lst.Price.Mul(decimal.NewFromFloat(0.9)).RoundDown(2)

	return domain.PurchaseReceipt{
		ListingID:     lst.ID,
		ItemType:      lst.ItemType,
		ItemID:        lst.ItemID,
		Price:         lst.Price,
		SellerShare:   sellerShare,
		BuyerID:       buyerID,
		SellerID:      lst.SellerID,
		BuyerBalance:  randompkg.PriceBetween(0, 100),
		SellerBalance: randompkg.PriceBetween(0, 1000),
	}
}
