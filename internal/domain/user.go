// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameAlreadyExists indicates that the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrEmailAlreadyExists indicates that the user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrInvalidCredentials indicates a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserBanned indicates that the user account is banned.
	ErrUserBanned = errors.New("account is banned")
	// ErrAdminRequired indicates that the action requires the admin role.
	ErrAdminRequired = errors.New("admin role required")
)

// User holds a full storefront account row.
type User struct {
	ID             int32           `json:"id"`
	Email          string          `json:"email"`
	HashedPassword string          `json:"-"`
	Username       string          `json:"username"`
	DisplayName    string          `json:"display_name"`
	AvatarURL      string          `json:"avatar_url"`
	Balance        decimal.Decimal `json:"balance"`
	Role           string          `json:"role"`
	IsVerified     bool            `json:"is_verified"`
	IsBanned       bool            `json:"is_banned"`
	HoursOnline    int32           `json:"hours_online"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Email          string
	HashedPassword string
	Username       string
	DisplayName    string
}

// UpdateProfileParams is the input data to overwrite mutable profile fields.
type UpdateProfileParams struct {
	ID          int32
	DisplayName string
	Username    string
	AvatarURL   string
}

// UserWithoutPassword is User data excluding credential data.
type UserWithoutPassword struct {
	ID          int32           `json:"id"`
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	AvatarURL   string          `json:"avatar_url"`
	Balance     decimal.Decimal `json:"balance"`
	Role        string          `json:"role"`
	IsVerified  bool            `json:"is_verified"`
	IsBanned    bool            `json:"is_banned"`
}

// Profile is the account projection returned for a profile page.
// It carries the balance and play time but not the email.
type Profile struct {
	ID          int32           `json:"id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	AvatarURL   string          `json:"avatar_url"`
	Balance     decimal.Decimal `json:"balance"`
	Role        string          `json:"role"`
	IsVerified  bool            `json:"is_verified"`
	IsBanned    bool            `json:"is_banned"`
	HoursOnline int32           `json:"hours_online"`
}

// PublicProfile is the narrowed account projection returned by user search.
// It omits the balance and email.
type PublicProfile struct {
	ID          int32  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Role        string `json:"role"`
	IsVerified  bool   `json:"is_verified"`
	IsBanned    bool   `json:"is_banned"`
}
