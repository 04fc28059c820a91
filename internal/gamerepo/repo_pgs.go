// Package gamerepo manages repository layer of games.
package gamerepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/pkg/dbpkg"
	"github.com/gamevault/gamevault/pkg/errorspkg"
)

// RepoPGS facilitates game repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns game RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const gameColumns = `
	id, title, description, price, developer_email, genre, age_rating,
	file_url, logo_url, screenshots, publisher_username, status, is_featured, created_at`

const createQuery = `
INSERT INTO games (
	title, description, price, developer_email, genre, age_rating,
	file_url, logo_url, screenshots, publisher_username, status
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending'
) RETURNING` + gameColumns

// Create inserts a game pending moderation and returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateGameParams) (domain.Game, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Title,
		arg.Description,
		arg.Price,
		arg.DeveloperEmail,
		arg.Genre,
		arg.AgeRating,
		arg.FileURL,
		arg.LogoURL,
		pq.Array(arg.Screenshots),
		arg.PublisherUsername,
	)

	g, err := scanGame(row)
	if err != nil {
		l.Error().Err(err).Send()
		return g, errorspkg.ErrInternal
	}

	return g, nil
}

func scanGame(row *sql.Row) (domain.Game, error) {
	var g domain.Game

	err := row.Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.Price,
		&g.DeveloperEmail,
		&g.Genre,
		&g.AgeRating,
		&g.FileURL,
		&g.LogoURL,
		pq.Array(&g.Screenshots),
		&g.PublisherUsername,
		&g.Status,
		&g.IsFeatured,
		&g.CreatedAt,
	)

	return g, err
}

const listQuery = `
SELECT` + gameColumns + `
FROM games
WHERE status = $1
ORDER BY id DESC
`

// List returns games with the given moderation status, newest first.
func (r *RepoPGS) List(ctx context.Context, status string) ([]domain.Game, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, status)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	games := []domain.Game{}

	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(
			&g.ID,
			&g.Title,
			&g.Description,
			&g.Price,
			&g.DeveloperEmail,
			&g.Genre,
			&g.AgeRating,
			&g.FileURL,
			&g.LogoURL,
			pq.Array(&g.Screenshots),
			&g.PublisherUsername,
			&g.Status,
			&g.IsFeatured,
			&g.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return games, nil
}

const getQuery = `
SELECT` + gameColumns + `
FROM games
WHERE id = $1
`

// Get returns the game with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Game, error) {
	l := zerolog.Ctx(ctx)

	g, err := scanGame(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return g, domain.ErrGameNotFound
		}

		return g, errorspkg.ErrInternal
	}

	return g, nil
}

const grantOwnershipQuery = `
INSERT INTO user_games (user_id, game_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

// GrantOwnership records that the user owns the game.
// Granting an already owned game is a no-op.
func (r *RepoPGS) GrantOwnership(ctx context.Context, userID, gameID int32) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, grantOwnershipQuery, userID, gameID); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const setStatusQuery = `
UPDATE games
SET status = $1
WHERE id = $2
`

// SetStatus overwrites the moderation status of the game.
func (r *RepoPGS) SetStatus(ctx context.Context, id int32, status string) error {
	return r.exec(ctx, setStatusQuery, status, id)
}

const setFeaturedQuery = `
UPDATE games
SET is_featured = $1
WHERE id = $2
`

// SetFeatured overwrites the featured flag of the game.
func (r *RepoPGS) SetFeatured(ctx context.Context, id int32, featured bool) error {
	return r.exec(ctx, setFeaturedQuery, featured, id)
}

func (r *RepoPGS) exec(ctx context.Context, query string, value any, id int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, query, value, id)
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
		return domain.ErrGameNotFound
	}

	return nil
}
