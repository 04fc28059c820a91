// Package gamedelivery manages delivery layer of games.
package gamedelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/pkg/catalogpkg"
	"github.com/gamevault/gamevault/pkg/errorspkg"
	"github.com/gamevault/gamevault/pkg/web"
)

// Service provides service layer interface needed by game delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package gamedelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateGameParams) (domain.Game, error)
	List(ctx context.Context, status string) ([]domain.Game, error)
	Approve(ctx context.Context, id int32) error
	Reject(ctx context.Context, id int32) error
	SetFeatured(ctx context.Context, id int32, featured bool) error
}

// Handler facilitates game delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns game handler.
func NewHandler(gs Service) Handler {
	return Handler{service: gs}
}

type listRequest struct {
	Status string `form:"status" binding:"omitempty,gamestatus"`
}

type gamesData struct {
	Games []domain.Game `json:"games"`
}

// List handles http request to list games by moderation status.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			l.Info().Err(err).Send()
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if req.Status == "" {
		req.Status = catalogpkg.StatusApproved
	}

	games, err := h.service.List(ctx, req.Status)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gamesData{Games: games}})
}

type createRequest struct {
	Title             string          `json:"title" binding:"required"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	DeveloperEmail    string          `json:"developer_email" binding:"omitempty,email"`
	Genre             string          `json:"genre"`
	AgeRating         string          `json:"age_rating"`
	FileURL           string          `json:"file_url"`
	LogoURL           string          `json:"logo_url"`
	Screenshots       []string        `json:"screenshots"`
	PublisherUsername string          `json:"publisher_username" binding:"required"`
}

type gameData struct {
	Game domain.Game `json:"game"`
}

// Create handles http request to publish a game for moderation.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if req.Price.IsNegative() {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: "price must not be negative"})
		return
	}

	arg := domain.CreateGameParams{
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		DeveloperEmail:    req.DeveloperEmail,
		Genre:             req.Genre,
		AgeRating:         req.AgeRating,
		FileURL:           req.FileURL,
		LogoURL:           req.LogoURL,
		Screenshots:       req.Screenshots,
		PublisherUsername: req.PublisherUsername,
	}

	game, err := h.service.Create(ctx, arg)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gameData{Game: game}})
}

type uriRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type successData struct {
	Success bool `json:"success"`
}

// Approve handles http request to approve a pending game.
func (h *Handler) Approve(gctx *gin.Context) {
	h.moderate(gctx, h.service.Approve)
}

// Reject handles http request to reject a pending game.
func (h *Handler) Reject(gctx *gin.Context) {
	h.moderate(gctx, h.service.Reject)
}

func (h *Handler) moderate(gctx *gin.Context, action func(context.Context, int32) error) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if err := action(ctx, req.ID); err != nil {
		if err == domain.ErrGameNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: successData{Success: true}})
}

type setFeaturedRequest struct {
	IsFeatured *bool `json:"is_featured" binding:"required"`
}

// SetFeatured handles http request to flag a game as featured.
func (h *Handler) SetFeatured(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req setFeaturedRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if err := h.service.SetFeatured(ctx, uri.ID, *req.IsFeatured); err != nil {
		if err == domain.ErrGameNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: successData{Success: true}})
}
