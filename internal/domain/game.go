package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrGameNotFound indicates that the game is not found.
var ErrGameNotFound = errors.New("game not found")

// Game holds a catalog entry published by a developer.
type Game struct {
	ID                int32           `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	DeveloperEmail    string          `json:"developer_email"`
	Genre             string          `json:"genre"`
	AgeRating         string          `json:"age_rating"`
	FileURL           string          `json:"file_url"`
	LogoURL           string          `json:"logo_url"`
	Screenshots       []string        `json:"screenshots"`
	PublisherUsername string          `json:"publisher_username"`
	Status            string          `json:"status"`
	IsFeatured        bool            `json:"is_featured"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CreateGameParams is the input data to publish a game for moderation.
type CreateGameParams struct {
	Title             string
	Description       string
	Price             decimal.Decimal
	DeveloperEmail    string
	Genre             string
	AgeRating         string
	FileURL           string
	LogoURL           string
	Screenshots       []string
	PublisherUsername string
}
