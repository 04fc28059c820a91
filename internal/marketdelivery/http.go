// Package marketdelivery manages delivery layer of the peer marketplace.
package marketdelivery

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

// Service provides service layer interface needed by marketplace delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package marketdelivery
type Service interface {
	Sell(ctx context.Context, arg domain.CreateListingParams) (domain.Listing, error)
	ListActive(ctx context.Context) ([]domain.ListingDetail, error)
	Buy(ctx context.Context, listingID, buyerID int32) (domain.PurchaseReceipt, error)
}

// Handler facilitates marketplace delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns marketplace handler.
func NewHandler(ms Service) Handler {
	return Handler{service: ms}
}

type listingsData struct {
	Listings []domain.ListingDetail `json:"listings"`
}

// List handles http request to list active marketplace listings.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	listings, err := h.service.ListActive(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: listingsData{Listings: listings}})
}

type sellRequest struct {
	SellerID int32           `json:"seller_id" binding:"required,min=1"`
	ItemType string          `json:"item_type" binding:"required,itemtype"`
	ItemID   int32           `json:"item_id" binding:"required,min=1"`
	Price    decimal.Decimal `json:"price"`
}

type listingData struct {
	Listing domain.Listing `json:"listing"`
}

// Sell handles http request to put an item up for sale.
func (h *Handler) Sell(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req sellRequest
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

	if !req.Price.IsPositive() {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: "price must be positive"})
		return
	}

	arg := domain.CreateListingParams{
		SellerID: req.SellerID,
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
		Price:    req.Price,
	}

	listing, err := h.service.Sell(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: listingData{Listing: listing}})
}

type buyRequest struct {
	ListingID int32 `json:"listing_id" binding:"required,min=1"`
	BuyerID   int32 `json:"buyer_id" binding:"required,min=1"`
}

type receiptData struct {
	Receipt domain.PurchaseReceipt `json:"receipt"`
}

// Buy handles http request to purchase a marketplace listing.
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

	receipt, err := h.service.Buy(ctx, req.ListingID, req.BuyerID)
	if err != nil {
		switch err {
		case domain.ErrListingNotFound, domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: receiptData{Receipt: receipt}})
}
