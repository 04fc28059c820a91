// Package marketrepo manages repository layer of the peer marketplace.
package marketrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/internal/framerepo"
	"github.com/gamevault/gamevault/internal/gamerepo"
	"github.com/gamevault/gamevault/internal/userrepo"
	"github.com/gamevault/gamevault/pkg/catalogpkg"
	"github.com/gamevault/gamevault/pkg/dbpkg"
	"github.com/gamevault/gamevault/pkg/errorspkg"
	"github.com/gamevault/gamevault/pkg/moneypkg"
)

// RepoPGS facilitates marketplace repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns marketplace RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns marketplace RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
	marketplace_items (seller_id, item_type, item_id, price)
VALUES
	($1, $2, $3, $4)
RETURNING id, seller_id, item_type, item_id, price, status, created_at
`

// Create puts an item up for sale and returns the active listing.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateListingParams) (domain.Listing, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.SellerID, arg.ItemType, arg.ItemID, arg.Price)

	lst, err := scanListing(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "marketplace_items_seller_id_fkey" {
				return lst, domain.ErrUserNotFound
			}
		}

		return lst, errorspkg.ErrInternal
	}

	return lst, nil
}

func scanListing(row *sql.Row) (domain.Listing, error) {
	var lst domain.Listing

	err := row.Scan(
		&lst.ID,
		&lst.SellerID,
		&lst.ItemType,
		&lst.ItemID,
		&lst.Price,
		&lst.Status,
		&lst.CreatedAt,
	)

	return lst, err
}

const getQuery = `
SELECT id, seller_id, item_type, item_id, price, status, created_at
FROM marketplace_items
WHERE id = $1
`

// Get returns the listing with the given id regardless of status.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Listing, error) {
	l := zerolog.Ctx(ctx)

	lst, err := scanListing(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return lst, domain.ErrListingNotFound
		}

		return lst, errorspkg.ErrInternal
	}

	return lst, nil
}

const listActiveQuery = `
SELECT
	m.id, m.seller_id, m.item_type, m.item_id, m.price, u.username,
	CASE WHEN m.item_type = 'game' THEN g.title ELSE f.name END AS item_name,
	CASE WHEN m.item_type = 'game' THEN g.logo_url ELSE f.image_url END AS item_image
FROM marketplace_items m
JOIN users u ON u.id = m.seller_id
LEFT JOIN games g ON m.item_type = 'game' AND g.id = m.item_id
LEFT JOIN frames f ON m.item_type = 'frame' AND f.id = m.item_id
WHERE m.status = 'active'
ORDER BY m.id DESC
`

// ListActive returns active listings joined with seller and item metadata,
// newest first.
func (r *RepoPGS) ListActive(ctx context.Context) ([]domain.ListingDetail, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listActiveQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	listings := []domain.ListingDetail{}

	for rows.Next() {
		var (
			d         domain.ListingDetail
			itemName  sql.NullString
			itemImage sql.NullString
		)

		if err := rows.Scan(
			&d.ID,
			&d.SellerID,
			&d.ItemType,
			&d.ItemID,
			&d.Price,
			&d.SellerUsername,
			&itemName,
			&itemImage,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		d.ItemName = itemName.String
		d.ItemImage = itemImage.String

		listings = append(listings, d)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return listings, nil
}

const claimListingQuery = `
UPDATE marketplace_items
SET status = 'sold'
WHERE id = $1 AND status = 'active'
RETURNING id, seller_id, item_type, item_id, price, status, created_at
`

// Purchase buys the listing for the buyer.
//
// All steps run in one transaction. The claiming update only matches an
// active listing, so of two concurrent buyers exactly one claims it and
// the other gets ErrListingNotFound. The seller is credited with 90% of
// the price rounded down to cents; the rest is kept by the platform.
func (r *RepoPGS) Purchase(ctx context.Context, listingID, buyerID int32) (domain.PurchaseReceipt, error) {
	l := zerolog.Ctx(ctx)

	var receipt domain.PurchaseReceipt

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return receipt, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	lst, err := scanListing(tx.QueryRowContext(ctx, claimListingQuery, listingID))
	if err != nil {
		if err == sql.ErrNoRows {
			return receipt, domain.ErrListingNotFound
		}

		l.Error().Err(err).Send()

		return receipt, errorspkg.ErrInternal
	}

	txUserRepo := userrepo.NewRepoPGS(tx)

	buyer, err := txUserRepo.Get(ctx, buyerID)
	if err != nil {
		return receipt, err
	}

	if buyer.Balance.LessThan(lst.Price) {
		return receipt, domain.ErrInsufficientBalance
	}

	buyer, err = txUserRepo.AddBalance(ctx, lst.Price.Neg(), buyerID)
	if err != nil {
		return receipt, err
	}

	sellerShare := moneypkg.SellerShare(lst.Price)

	seller, err := txUserRepo.AddBalance(ctx, sellerShare, lst.SellerID)
	if err != nil {
		return receipt, err
	}

	switch lst.ItemType {
	case catalogpkg.ItemTypeGame:
		err = gamerepo.NewRepoPGS(tx).GrantOwnership(ctx, buyerID, lst.ItemID)
	case catalogpkg.ItemTypeFrame:
		err = framerepo.NewTxRepoPGS(tx).GrantOwnership(ctx, buyerID, lst.ItemID)
	}

	if err != nil {
		return receipt, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return receipt, errorspkg.ErrInternal
	}

	receipt = domain.PurchaseReceipt{
		ListingID:     lst.ID,
		ItemType:      lst.ItemType,
		ItemID:        lst.ItemID,
		Price:         lst.Price,
		SellerShare:   sellerShare,
		BuyerID:       buyer.ID,
		SellerID:      seller.ID,
		BuyerBalance:  buyer.Balance,
		SellerBalance: seller.Balance,
	}

	return receipt, nil
}
