package marketdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/internal/test"
	"github.com/gamevault/gamevault/pkg/catalogpkg"
	"github.com/gamevault/gamevault/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	decimal.MarshalJSONWithoutQuotes = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("itemtype", catalogpkg.ValidItemType); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func newServer(t *testing.T) (*MockService, *gin.Engine) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	service := NewMockService(ctrl)
	handler := NewHandler(service)

	server := gin.New()
	server.GET("/marketplace", handler.List)
	server.POST("/marketplace/sell", handler.Sell)
	server.POST("/marketplace/buy", handler.Buy)

	return service, server
}

func TestList(t *testing.T) {
	seller := test.RandomUser(randompkg.Username())
	listing := test.RandomListing(seller.ID, randompkg.Int32Between(1, 100))

	details := []domain.ListingDetail{{
		ID:             listing.ID,
		SellerID:       listing.SellerID,
		ItemType:       listing.ItemType,
		ItemID:         listing.ItemID,
		Price:          listing.Price,
		SellerUsername: seller.Username,
		ItemName:       randompkg.String(10),
		ItemImage:      randompkg.ImageURL(),
	}}

	service, server := newServer(t)

	service.EXPECT().
		ListActive(gomock.Any()).
		Times(1).
		Return(details, nil)

	req, err := http.NewRequest(http.MethodGet, "/marketplace", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	res := struct {
		Data *struct {
			Listings []domain.ListingDetail `json:"listings"`
		} `json:"data"`
	}{}

	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
	require.NotNil(t, res.Data)

	if diff := cmp.Diff(details, res.Data.Listings, decimalComparer); diff != "" {
		t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
	}
}

func TestSell(t *testing.T) {
	seller := test.RandomUser(randompkg.Username())
	listing := test.RandomListing(seller.ID, randompkg.Int32Between(1, 100))

	arg := domain.CreateListingParams{
		SellerID: listing.SellerID,
		ItemType: listing.ItemType,
		ItemID:   listing.ItemID,
		Price:    listing.Price,
	}

	okBody := fmt.Sprintf(`{"seller_id": %d, "item_type": %q, "item_id": %d, "price": %s}`,
		listing.SellerID, listing.ItemType, listing.ItemID, listing.Price.String())

	testCases := []struct {
		name           string
		body           string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			body: okBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Sell(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(listing, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidItemType",
			body: fmt.Sprintf(`{"seller_id": %d, "item_type": "sticker", "item_id": %d, "price": %s}`,
				listing.SellerID, listing.ItemID, listing.Price.String()),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Sell(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ItemType must be one of: game, frame",
		},
		{
			name: "ZeroPrice",
			body: fmt.Sprintf(`{"seller_id": %d, "item_type": %q, "item_id": %d, "price": 0}`,
				listing.SellerID, listing.ItemType, listing.ItemID),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Sell(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "price must be positive",
		},
		{
			name: "SellerNotFound",
			body: okBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Sell(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(domain.Listing{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrUserNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, server := newServer(t)

			tc.buildStubs(service)

			req, err := http.NewRequest(http.MethodPost, "/marketplace/sell", bytes.NewReader([]byte(tc.body)))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := struct {
				Data *struct {
					Listing domain.Listing `json:"listing"`
				} `json:"data"`
				Error string `json:"error"`
			}{}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("res.Error=%q, want %q", res.Error, tc.wantError)
				}

				return
			}

			require.NotNil(t, res.Data)
			require.Equal(t, catalogpkg.ListingActive, res.Data.Listing.Status)

			if diff := cmp.Diff(listing, res.Data.Listing, decimalComparer); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuy(t *testing.T) {
	seller := test.RandomUser(randompkg.Username())
	buyer := test.RandomUser(randompkg.Username())
	listing := test.RandomListing(seller.ID, randompkg.Int32Between(1, 100))
	receipt := test.RandomReceipt(listing, buyer.ID)

	okBody := fmt.Sprintf(`{"listing_id": %d, "buyer_id": %d}`, listing.ID, buyer.ID)

	testCases := []struct {
		name           string
		body           string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			body: okBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Buy(gomock.Any(), gomock.Eq(listing.ID), gomock.Eq(buyer.ID)).
					Times(1).
					Return(receipt, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "MissingListingID",
			body: fmt.Sprintf(`{"buyer_id": %d}`, buyer.ID),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Buy(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ListingID is required",
		},
		{
			name: "ListingGone",
			body: okBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Buy(gomock.Any(), gomock.Eq(listing.ID), gomock.Eq(buyer.ID)).
					Times(1).
					Return(domain.PurchaseReceipt{}, domain.ErrListingNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrListingNotFound.Error(),
		},
		{
			name: "InsufficientBalance",
			body: okBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Buy(gomock.Any(), gomock.Eq(listing.ID), gomock.Eq(buyer.ID)).
					Times(1).
					Return(domain.PurchaseReceipt{}, domain.ErrInsufficientBalance)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInsufficientBalance.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, server := newServer(t)

			tc.buildStubs(service)

			req, err := http.NewRequest(http.MethodPost, "/marketplace/buy", bytes.NewReader([]byte(tc.body)))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := struct {
				Data *struct {
					Receipt domain.PurchaseReceipt `json:"receipt"`
				} `json:"data"`
				Error string `json:"error"`
			}{}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("res.Error=%q, want %q", res.Error, tc.wantError)
				}

				return
			}

			require.NotNil(t, res.Data)
			require.Equal(t, buyer.ID, res.Data.Receipt.BuyerID)
			require.True(t, receipt.SellerShare.Equal(res.Data.Receipt.SellerShare))

			if diff := cmp.Diff(receipt, res.Data.Receipt, decimalComparer); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
