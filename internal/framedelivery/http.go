// Package framedelivery manages delivery layer of avatar frames.
package framedelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/pkg/errorspkg"
	"github.com/gamevault/gamevault/pkg/web"
)

// Service provides service layer interface needed by frame delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package framedelivery
type Service interface {
	Create(ctx context.Context, name string, price decimal.Decimal, imageURL string) (domain.Frame, error)
	List(ctx context.Context) ([]domain.Frame, error)
	ListOwned(ctx context.Context, userID int32) ([]domain.OwnedFrame, error)
	Buy(ctx context.Context, userID, frameID int32) (domain.FramePurchaseResult, error)
	SetActive(ctx context.Context, userID, frameID int32) error
}

// Handler facilitates frame delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns frame handler.
func NewHandler(fs Service) Handler {
	return Handler{service: fs}
}

type listRequest struct {
	UserID int32 `form:"user_id" binding:"omitempty,min=1"`
}

type framesData struct {
	Frames []domain.Frame `json:"frames"`
}

type ownedFramesData struct {
	Frames []domain.OwnedFrame `json:"frames"`
}

// List handles http request to list the frame catalog, or a user's
// owned frames when user_id is given.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if req.UserID != 0 {
		frames, err := h.service.ListOwned(ctx, req.UserID)
		if err != nil {
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
			return
		}

		gctx.JSON(http.StatusOK, web.Response{Data: ownedFramesData{Frames: frames}})

		return
	}

	frames, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: framesData{Frames: frames}})
}

type createRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

type frameData struct {
	Frame domain.Frame `json:"frame"`
}

// Create handles http request to add a frame to the store catalog.
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

	frame, err := h.service.Create(ctx, req.Name, req.Price, req.ImageURL)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: frameData{Frame: frame}})
}

type buyRequest struct {
	UserID  int32 `json:"user_id" binding:"required,min=1"`
	FrameID int32 `json:"frame_id" binding:"required,min=1"`
}

type purchaseData struct {
	Purchase domain.FramePurchaseResult `json:"purchase"`
}

// Buy handles http request to purchase a frame from the store.
func (h *Handler) Buy(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req buyRequest
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

	result, err := h.service.Buy(ctx, req.UserID, req.FrameID)
	if err != nil {
		switch err {
		case domain.ErrFrameNotFound, domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: purchaseData{Purchase: result}})
}

type setActiveRequest struct {
	UserID  int32 `json:"user_id" binding:"required,min=1"`
	FrameID int32 `json:"frame_id" binding:"required,min=1"`
}

type successData struct {
	Success bool `json:"success"`
}

// SetActive handles http request to equip an owned frame.
func (h *Handler) SetActive(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req setActiveRequest
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

	if err := h.service.SetActive(ctx, req.UserID, req.FrameID); err != nil {
		switch err {
		case domain.ErrFrameNotOwned:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: successData{Success: true}})
}
