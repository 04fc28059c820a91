package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/pkg/catalogpkg"
	"github.com/gamevault/gamevault/pkg/configpkg"
	"github.com/gamevault/gamevault/pkg/randompkg"
	"github.com/gamevault/gamevault/pkg/tokenpkg"
)

func testService(t *testing.T, repo Repo) *Service {
	t.Helper()

	config := configpkg.Config{
		TokenSymmetricKey:    randompkg.String(32),
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", config.TokenSymmetricKey, err)
	}

	return New(repo, config, tokenMaker)
}

func TestCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := testService(t, repo)

	email := randompkg.Email()

	arg := domain.CreateSessionParams{
		Email: email,
		Role:  catalogpkg.RoleUser,
	}

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
			require.Equal(t, email, arg.Email)
			require.NotZero(t, arg.ID)
			require.NotEmpty(t, arg.RefreshToken)
			require.WithinDuration(t, time.Now().Add(time.Hour), arg.ExpiresAt, time.Minute)

			return domain.Session{
				ID:           arg.ID,
				Email:        arg.Email,
				RefreshToken: arg.RefreshToken,
				ExpiresAt:    arg.ExpiresAt,
			}, nil
		})

	accessToken, accessExpiresAt, sess, err := service.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.WithinDuration(t, time.Now().Add(time.Minute), accessExpiresAt, time.Minute)
	require.Equal(t, email, sess.Email)

	payload, err := service.TokenMaker.VerifyToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, email, payload.Email)
	require.Equal(t, catalogpkg.RoleUser, payload.Role)
}

func TestRenewAccessToken(t *testing.T) {
	email := randompkg.Email()

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo, refreshToken string)
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, refreshToken string) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Session{
						Email:        email,
						RefreshToken: refreshToken,
						ExpiresAt:    time.Now().Add(time.Hour),
					}, nil)
			},
		},
		{
			name: "BlockedSession",
			buildStubs: func(repo *MockRepo, refreshToken string) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Session{
						Email:        email,
						RefreshToken: refreshToken,
						IsBlocked:    true,
						ExpiresAt:    time.Now().Add(time.Hour),
					}, nil)
			},
			wantErr: domain.ErrBlockedSession,
		},
		{
			name: "MismatchedEmail",
			buildStubs: func(repo *MockRepo, refreshToken string) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Session{
						Email:        randompkg.Email(),
						RefreshToken: refreshToken,
						ExpiresAt:    time.Now().Add(time.Hour),
					}, nil)
			},
			wantErr: domain.ErrInvalidUser,
		},
		{
			name: "MismatchedRefreshToken",
			buildStubs: func(repo *MockRepo, refreshToken string) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Session{
						Email:        email,
						RefreshToken: randompkg.String(32),
						ExpiresAt:    time.Now().Add(time.Hour),
					}, nil)
			},
			wantErr: domain.ErrMismatchedRefreshToken,
		},
		{
			name: "ExpiredSession",
			buildStubs: func(repo *MockRepo, refreshToken string) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Session{
						Email:        email,
						RefreshToken: refreshToken,
						ExpiresAt:    time.Now().Add(-time.Hour),
					}, nil)
			},
			wantErr: domain.ErrExpiredSession,
		},
		{
			name: "SessionNotFound",
			buildStubs: func(repo *MockRepo, refreshToken string) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Session{}, domain.ErrSessionNotFound)
			},
			wantErr: domain.ErrSessionNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := testService(t, repo)

			refreshToken, _, err := service.TokenMaker.CreateToken(email, catalogpkg.RoleUser, time.Hour)
			require.NoError(t, err)

			tc.buildStubs(repo, refreshToken)

			accessToken, expiresAt, err := service.RenewAccessToken(context.Background(), refreshToken)
			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, accessToken)
			require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Minute)

			payload, err := service.TokenMaker.VerifyToken(accessToken)
			require.NoError(t, err)
			require.Equal(t, email, payload.Email)
		})
	}
}

func TestRenewAccessTokenInvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := testService(t, repo)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)

	_, _, err := service.RenewAccessToken(context.Background(), "not-a-token")
	require.Error(t, err)
}
