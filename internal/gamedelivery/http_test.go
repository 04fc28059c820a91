package gamedelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
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
		if err := v.RegisterValidation("gamestatus", catalogpkg.ValidGameStatus); err != nil {
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
	server.GET("/games", handler.List)
	server.POST("/games", handler.Create)
	server.POST("/admin/games/:id/approve", handler.Approve)
	server.POST("/admin/games/:id/reject", handler.Reject)
	server.PUT("/admin/games/:id/featured", handler.SetFeatured)

	return service, server
}

func TestList(t *testing.T) {
	testGames := []domain.Game{test.RandomGame(randompkg.Username())}

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "DefaultsToApproved",
			url:  "/games",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					List(gomock.Any(), gomock.Eq(catalogpkg.StatusApproved)).
					Times(1).
					Return(testGames, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "PendingFilter",
			url:  "/games?status=pending",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					List(gomock.Any(), gomock.Eq(catalogpkg.StatusPending)).
					Times(1).
					Return([]domain.Game{}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidStatus",
			url:  "/games?status=published",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					List(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, server := newServer(t)

			tc.buildStubs(service)

			req, err := http.NewRequest(http.MethodGet, tc.url, nil)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	testGame := test.RandomGame(randompkg.Username())
	testGame.Status = catalogpkg.StatusPending

	type requestBody struct {
		Title             string   `json:"title"`
		Description       string   `json:"description"`
		Price             string   `json:"price"`
		DeveloperEmail    string   `json:"developer_email"`
		Genre             string   `json:"genre"`
		AgeRating         string   `json:"age_rating"`
		FileURL           string   `json:"file_url"`
		LogoURL           string   `json:"logo_url"`
		Screenshots       []string `json:"screenshots"`
		PublisherUsername string   `json:"publisher_username"`
	}

	okBody := requestBody{
		Title:             testGame.Title,
		Description:       testGame.Description,
		Price:             testGame.Price.String(),
		DeveloperEmail:    testGame.DeveloperEmail,
		Genre:             testGame.Genre,
		AgeRating:         testGame.AgeRating,
		FileURL:           testGame.FileURL,
		LogoURL:           testGame.LogoURL,
		Screenshots:       testGame.Screenshots,
		PublisherUsername: testGame.PublisherUsername,
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OK",
			requestBody: okBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(testGame, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "MissingTitle",
			requestBody: func() requestBody {
				b := okBody
				b.Title = ""
				return b
			}(),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Title is required",
		},
		{
			name: "NegativePrice",
			requestBody: func() requestBody {
				b := okBody
				b.Price = "-5"
				return b
			}(),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "price must not be negative",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, server := newServer(t)

			tc.buildStubs(service)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/games", bytes.NewReader(body))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := struct {
				Data *struct {
					Game domain.Game `json:"game"`
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
			require.Equal(t, catalogpkg.StatusPending, res.Data.Game.Status)

			compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
			if diff := cmp.Diff(testGame, res.Data.Game, decimalComparer, compareCreatedAt); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModerate(t *testing.T) {
	testGame := test.RandomGame(randompkg.Username())

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "ApproveOK",
			url:  fmt.Sprintf("/admin/games/%d/approve", testGame.ID),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Approve(gomock.Any(), gomock.Eq(testGame.ID)).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "RejectOK",
			url:  fmt.Sprintf("/admin/games/%d/reject", testGame.ID),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Reject(gomock.Any(), gomock.Eq(testGame.ID)).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "ApproveNotFound",
			url:  fmt.Sprintf("/admin/games/%d/approve", testGame.ID),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Approve(gomock.Any(), gomock.Eq(testGame.ID)).
					Times(1).
					Return(domain.ErrGameNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, server := newServer(t)

			tc.buildStubs(service)

			req, err := http.NewRequest(http.MethodPost, tc.url, nil)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}
		})
	}
}

func TestSetFeatured(t *testing.T) {
	testGame := test.RandomGame(randompkg.Username())

	testCases := []struct {
		name           string
		body           string
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "OK",
			body: `{"is_featured": true}`,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					SetFeatured(gomock.Any(), gomock.Eq(testGame.ID), gomock.Eq(true)).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "ClearOK",
			body: `{"is_featured": false}`,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					SetFeatured(gomock.Any(), gomock.Eq(testGame.ID), gomock.Eq(false)).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "MissingFlag",
			body: `{}`,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					SetFeatured(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, server := newServer(t)

			tc.buildStubs(service)

			url := fmt.Sprintf("/admin/games/%d/featured", testGame.ID)

			req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader([]byte(tc.body)))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}
		})
	}
}
