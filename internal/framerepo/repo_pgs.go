// Package framerepo manages repository layer of avatar frames.
package framerepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/internal/userrepo"
	"github.com/gamevault/gamevault/pkg/dbpkg"
	"github.com/gamevault/gamevault/pkg/errorspkg"
)

// RepoPGS facilitates frame repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns frame RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns frame RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
	frames (name, price, image_url)
VALUES
	($1, $2, $3)
RETURNING id, name, price, image_url, created_at
`

// Create creates the frame and then returns it.
func (r *RepoPGS) Create(ctx context.Context, name string, price decimal.Decimal, imageURL string) (domain.Frame, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, name, price, imageURL)

	var f domain.Frame

	err := row.Scan(&f.ID, &f.Name, &f.Price, &f.ImageURL, &f.CreatedAt)
	if err != nil {
		l.Error().Err(err).Send()
		return f, errorspkg.ErrInternal
	}

	return f, nil
}

const getQuery = `
SELECT id, name, price, image_url, created_at
FROM frames
WHERE id = $1
`

// Get returns the frame with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Frame, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var f domain.Frame

	err := row.Scan(&f.ID, &f.Name, &f.Price, &f.ImageURL, &f.CreatedAt)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return f, domain.ErrFrameNotFound
		}

		return f, errorspkg.ErrInternal
	}

	return f, nil
}

const listQuery = `
SELECT id, name, price, image_url, created_at
FROM frames
ORDER BY id DESC
`

// List returns all frames, newest first.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Frame, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	frames := []domain.Frame{}

	for rows.Next() {
		var f domain.Frame
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.ImageURL, &f.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return frames, nil
}

const listOwnedQuery = `
SELECT f.id, f.name, f.price, f.image_url, uf.is_active
FROM frames f
JOIN user_frames uf ON f.id = uf.frame_id
WHERE uf.user_id = $1
ORDER BY f.id DESC
`

// ListOwned returns the frames owned by the user together with the equipped state.
func (r *RepoPGS) ListOwned(ctx context.Context, userID int32) ([]domain.OwnedFrame, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listOwnedQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	frames := []domain.OwnedFrame{}

	for rows.Next() {
		var f domain.OwnedFrame
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.ImageURL, &f.IsActive); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return frames, nil
}

const grantOwnershipQuery = `
INSERT INTO user_frames (user_id, frame_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

// GrantOwnership records that the user owns the frame.
// Granting an already owned frame is a no-op.
func (r *RepoPGS) GrantOwnership(ctx context.Context, userID, frameID int32) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, grantOwnershipQuery, userID, frameID); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const clearActiveQuery = `
UPDATE user_frames
SET is_active = false
WHERE user_id = $1
`

const setActiveQuery = `
UPDATE user_frames
SET is_active = true
WHERE user_id = $1 AND frame_id = $2
`

// SetActive equips the given frame for the user.
//
// Both updates run in one transaction. The clearing update locks the
// user's ownership rows, so concurrent calls for the same user serialize
// and the user never ends up with zero or multiple active frames.
func (r *RepoPGS) SetActive(ctx context.Context, userID, frameID int32) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	if _, err := tx.ExecContext(ctx, clearActiveQuery, userID); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	res, err := tx.ExecContext(ctx, setActiveQuery, userID, frameID)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if affected == 0 {
		return domain.ErrFrameNotOwned
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// Buy performs a store purchase of the frame.
//
// It debits the buyer by the frame price and grants ownership within a
// single transaction. The spent amount goes to the store, not to another
// user.
func (r *RepoPGS) Buy(ctx context.Context, userID, frameID int32) (domain.FramePurchaseResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.FramePurchaseResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	txFrameRepo := NewTxRepoPGS(tx)
	txUserRepo := userrepo.NewRepoPGS(tx)

	frame, err := txFrameRepo.Get(ctx, frameID)
	if err != nil {
		return result, err
	}

	buyer, err := txUserRepo.Get(ctx, userID)
	if err != nil {
		return result, err
	}

	if buyer.Balance.LessThan(frame.Price) {
		return result, domain.ErrInsufficientBalance
	}

	buyer, err = txUserRepo.AddBalance(ctx, frame.Price.Neg(), userID)
	if err != nil {
		return result, err
	}

	if err := txFrameRepo.GrantOwnership(ctx, userID, frameID); err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.Frame = frame
	result.BuyerID = userID
	result.BuyerBalance = buyer.Balance

	return result, nil
}
