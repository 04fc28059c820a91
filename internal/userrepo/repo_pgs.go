// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/pkg/dbpkg"
	"github.com/gamevault/gamevault/pkg/errorspkg"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const userColumns = `
	id, email, hashed_password, username, display_name, avatar_url,
	balance, role, is_verified, is_banned, hours_online, created_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.HashedPassword,
		&u.Username,
		&u.DisplayName,
		&u.AvatarURL,
		&u.Balance,
		&u.Role,
		&u.IsVerified,
		&u.IsBanned,
		&u.HoursOnline,
		&u.CreatedAt,
	)

	return u, err
}

// CreateQuery inserts into users table.
const CreateQuery = `
INSERT INTO users (
    email,
    hashed_password,
    username,
    display_name
) VALUES (
    $1, $2, $3, $4
) RETURNING` + userColumns

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, CreateQuery,
		arg.Email,
		arg.HashedPassword,
		arg.Username,
		arg.DisplayName,
	)

	u, err := scanUser(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				switch pqErr.Constraint {
				case "users_username_key":
					return u, domain.ErrUsernameAlreadyExists
				case "users_email_key":
					return u, domain.ErrEmailAlreadyExists
				}
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getQuery = `
SELECT` + userColumns + `
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getByEmailQuery = `
SELECT` + userColumns + `
FROM users
WHERE email = $1
`

// GetByEmail returns the user with the given email.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, getByEmailQuery, email))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const searchQuery = `
SELECT
	id, username, display_name, avatar_url, role, is_verified, is_banned
FROM users
WHERE username LIKE '%' || $1 || '%'
ORDER BY is_verified DESC, id DESC
`

// Search returns public profiles whose username contains the given substring,
// verified users first, newest first.
func (r *RepoPGS) Search(ctx context.Context, username string) ([]domain.PublicProfile, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, searchQuery, username)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	profiles := []domain.PublicProfile{}

	for rows.Next() {
		var p domain.PublicProfile
		if err := rows.Scan(
			&p.ID,
			&p.Username,
			&p.DisplayName,
			&p.AvatarURL,
			&p.Role,
			&p.IsVerified,
			&p.IsBanned,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return profiles, nil
}

const listQuery = `
SELECT
	id, email, username, display_name, avatar_url, balance, role, is_verified, is_banned
FROM users
ORDER BY is_verified DESC, id DESC
`

// List returns all users with email and balance, verified users first, newest first.
func (r *RepoPGS) List(ctx context.Context) ([]domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	users := []domain.UserWithoutPassword{}

	for rows.Next() {
		var u domain.UserWithoutPassword
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.Username,
			&u.DisplayName,
			&u.AvatarURL,
			&u.Balance,
			&u.Role,
			&u.IsVerified,
			&u.IsBanned,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return users, nil
}

const updateProfileQuery = `
UPDATE users
SET display_name = $1, username = $2, avatar_url = $3
WHERE id = $4
RETURNING` + userColumns

// UpdateProfile overwrites the mutable profile fields and returns the updated user.
func (r *RepoPGS) UpdateProfile(ctx context.Context, arg domain.UpdateProfileParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateProfileQuery,
		arg.DisplayName,
		arg.Username,
		arg.AvatarURL,
		arg.ID,
	)

	u, err := scanUser(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "users_username_key" {
				return u, domain.ErrUsernameAlreadyExists
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const setVerifiedQuery = `
UPDATE users
SET is_verified = $1
WHERE id = $2
`

// SetVerified overwrites the verification flag.
func (r *RepoPGS) SetVerified(ctx context.Context, id int32, verified bool) error {
	return r.setFlag(ctx, setVerifiedQuery, verified, id)
}

const setBannedQuery = `
UPDATE users
SET is_banned = $1
WHERE id = $2
`

// SetBanned overwrites the ban flag.
func (r *RepoPGS) SetBanned(ctx context.Context, id int32, banned bool) error {
	return r.setFlag(ctx, setBannedQuery, banned, id)
}

func (r *RepoPGS) setFlag(ctx context.Context, query string, value bool, id int32) error {
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
		return domain.ErrUserNotFound
	}

	return nil
}

const setBalanceQuery = `
UPDATE users
SET balance = $1
WHERE id = $2
RETURNING` + userColumns

// SetBalance overwrites the user's balance and returns the updated user.
func (r *RepoPGS) SetBalance(ctx context.Context, id int32, balance decimal.Decimal) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, setBalanceQuery, balance, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "users_balance_check" {
				return u, domain.ErrInsufficientBalance
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const addBalanceQuery = `
UPDATE users
SET balance = balance + $1
WHERE id = $2
RETURNING` + userColumns

// AddBalance changes the user's balance by the given amount and returns the updated user.
//
// A negative amount debits the user; the balance check constraint rejects overdrafts.
func (r *RepoPGS) AddBalance(ctx context.Context, amount decimal.Decimal, id int32) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, addBalanceQuery, amount, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "users_balance_check" {
				return u, domain.ErrInsufficientBalance
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}
