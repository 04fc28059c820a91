package userdelivery

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
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/internal/test"
	"github.com/gamevault/gamevault/pkg/errorspkg"
	"github.com/gamevault/gamevault/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	decimal.MarshalJSONWithoutQuotes = true

	os.Exit(m.Run())
}

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func newServer(t *testing.T) (*MockService, *MockSessionMaker, *gin.Engine) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	service := NewMockService(ctrl)
	sessionMaker := NewMockSessionMaker(ctrl)
	handler := NewHandler(service, sessionMaker)

	server := gin.New()
	server.POST("/auth/register", handler.Register)
	server.POST("/auth/login", handler.Login)
	server.GET("/users", handler.List)
	server.GET("/users/:id", handler.Get)
	server.PUT("/users/:id", handler.UpdateProfile)
	server.POST("/admin/users/:id/ban", handler.Ban)
	server.PUT("/admin/users/:id/balance", handler.SetBalance)

	return service, sessionMaker, server
}

func expectSession(sessionMaker *MockSessionMaker, user domain.UserWithoutPassword) {
	sessionMaker.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Times(1).
		Return(
			randompkg.String(32),
			time.Now().Add(time.Minute),
			domain.Session{
				Email:        user.Email,
				RefreshToken: randompkg.String(32),
				ExpiresAt:    time.Now().Add(time.Hour),
			},
			nil,
		)
}

func TestRegister(t *testing.T) {
	testUser := test.RandomUser(randompkg.Username())
	testPassword := randompkg.String(10)
	userWP := domain.UserWithoutPassword{
		ID:       testUser.ID,
		Email:    testUser.Email,
		Username: testUser.Username,
		Role:     testUser.Role,
		Balance:  testUser.Balance,
	}

	type requestBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService, sessionMaker *MockSessionMaker)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			requestBody: requestBody{
				Email:    testUser.Email,
				Password: testPassword,
				Username: testUser.Username,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Register(gomock.Any(), gomock.Eq(testUser.Email), gomock.Eq(testPassword), gomock.Eq(testUser.Username)).
					Times(1).
					Return(userWP, nil)

				expectSession(sessionMaker, userWP)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidEmail",
			requestBody: requestBody{
				Email:    "not-an-email",
				Password: testPassword,
				Username: testUser.Username,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Email must be a valid email",
		},
		{
			name: "ShortPassword",
			requestBody: requestBody{
				Email:    testUser.Email,
				Password: "123",
				Username: testUser.Username,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password must be at least 6",
		},
		{
			name: "InvalidUsername",
			requestBody: requestBody{
				Email:    testUser.Email,
				Password: testPassword,
				Username: "bad username!",
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Username must contain only letters and numbers",
		},
		{
			name: "DuplicateEmail",
			requestBody: requestBody{
				Email:    testUser.Email,
				Password: testPassword,
				Username: testUser.Username,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrEmailAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrEmailAlreadyExists.Error(),
		},
		{
			name: "DuplicateUsername",
			requestBody: requestBody{
				Email:    testUser.Email,
				Password: testPassword,
				Username: testUser.Username,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUsernameAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUsernameAlreadyExists.Error(),
		},
		{
			name: "InternalServerError",
			requestBody: requestBody{
				Email:    testUser.Email,
				Password: testPassword,
				Username: testUser.Username,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, sessionMaker, server := newServer(t)

			tc.buildStubs(service, sessionMaker)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := struct {
				AccessToken string `json:"access_token"`
				Data        *struct {
					User domain.UserWithoutPassword `json:"user"`
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

			require.NotEmpty(t, res.AccessToken)
			require.NotNil(t, res.Data)

			if diff := cmp.Diff(userWP, res.Data.User, decimalComparer); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	testUser := test.RandomUser(randompkg.Username())
	testPassword := randompkg.String(10)
	userWP := domain.UserWithoutPassword{
		ID:       testUser.ID,
		Email:    testUser.Email,
		Username: testUser.Username,
		Role:     testUser.Role,
		Balance:  testUser.Balance,
	}

	type requestBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService, sessionMaker *MockSessionMaker)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			requestBody: requestBody{
				Email:    testUser.Email,
				Password: testPassword,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Eq(testUser.Email), gomock.Eq(testPassword)).
					Times(1).
					Return(userWP, nil)

				expectSession(sessionMaker, userWP)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidCredentials",
			requestBody: requestBody{
				Email:    testUser.Email,
				Password: testPassword,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrInvalidCredentials)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrInvalidCredentials.Error(),
		},
		{
			name: "BannedUser",
			requestBody: requestBody{
				Email:    testUser.Email,
				Password: testPassword,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUserBanned)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrUserBanned.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, sessionMaker, server := newServer(t)

			tc.buildStubs(service, sessionMaker)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := struct {
				AccessToken string `json:"access_token"`
				Error       string `json:"error"`
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

			require.NotEmpty(t, res.AccessToken)
		})
	}
}

func TestGet(t *testing.T) {
	testUser := test.RandomUser(randompkg.Username())
	profile := domain.Profile{
		ID:          testUser.ID,
		Username:    testUser.Username,
		DisplayName: testUser.DisplayName,
		Balance:     testUser.Balance,
		Role:        testUser.Role,
		HoursOnline: 12,
	}

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			url:  fmt.Sprintf("/users/%d", testUser.ID),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(testUser.ID)).
					Times(1).
					Return(profile, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NotFound",
			url:  fmt.Sprintf("/users/%d", testUser.ID),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(testUser.ID)).
					Times(1).
					Return(domain.Profile{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrUserNotFound.Error(),
		},
		{
			name: "InvalidID",
			url:  "/users/0",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, _, server := newServer(t)

			tc.buildStubs(service)

			req, err := http.NewRequest(http.MethodGet, tc.url, nil)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			res := struct {
				Data *struct {
					User domain.Profile `json:"user"`
				} `json:"data"`
			}{}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			require.NotNil(t, res.Data)

			if diff := cmp.Diff(profile, res.Data.User, decimalComparer); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetBalance(t *testing.T) {
	testUser := test.RandomUser(randompkg.Username())
	newBalance := decimal.RequireFromString("250.50")

	userWP := domain.UserWithoutPassword{
		ID:       testUser.ID,
		Email:    testUser.Email,
		Username: testUser.Username,
		Balance:  newBalance,
	}

	testCases := []struct {
		name           string
		balance        string
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name:    "OK",
			balance: "250.50",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					SetBalance(gomock.Any(), gomock.Eq(testUser.ID), gomock.Any()).
					Times(1).
					Return(userWP, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:    "NegativeBalance",
			balance: "-1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					SetBalance(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:    "NotFound",
			balance: "250.50",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					SetBalance(gomock.Any(), gomock.Eq(testUser.ID), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, _, server := newServer(t)

			tc.buildStubs(service)

			body := []byte(fmt.Sprintf(`{"balance": %s}`, tc.balance))
			url := fmt.Sprintf("/admin/users/%d/balance", testUser.ID)

			req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}
		})
	}
}

func TestBan(t *testing.T) {
	testUser := test.RandomUser(randompkg.Username())

	service, _, server := newServer(t)

	service.EXPECT().
		SetBanned(gomock.Any(), gomock.Eq(testUser.ID), gomock.Eq(true)).
		Times(1).
		Return(nil)

	url := fmt.Sprintf("/admin/users/%d/ban", testUser.ID)

	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
}
