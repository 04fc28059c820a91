// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gamevault/gamevault/internal/framedelivery"
	"github.com/gamevault/gamevault/internal/framerepo"
	"github.com/gamevault/gamevault/internal/frameservice"
	"github.com/gamevault/gamevault/internal/gamedelivery"
	"github.com/gamevault/gamevault/internal/gamerepo"
	"github.com/gamevault/gamevault/internal/gameservice"
	"github.com/gamevault/gamevault/internal/marketdelivery"
	"github.com/gamevault/gamevault/internal/marketrepo"
	"github.com/gamevault/gamevault/internal/marketservice"
	"github.com/gamevault/gamevault/internal/middleware"
	"github.com/gamevault/gamevault/internal/sessiondelivery"
	"github.com/gamevault/gamevault/internal/sessionrepo"
	"github.com/gamevault/gamevault/internal/sessionservice"
	"github.com/gamevault/gamevault/internal/userdelivery"
	"github.com/gamevault/gamevault/internal/userrepo"
	"github.com/gamevault/gamevault/internal/userservice"
	"github.com/gamevault/gamevault/pkg/catalogpkg"
	"github.com/gamevault/gamevault/pkg/configpkg"
	"github.com/gamevault/gamevault/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	decimal.MarshalJSONWithoutQuotes = true

	userRepo := userrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	gameRepo := gamerepo.NewRepoPGS(conn)
	frameRepo := framerepo.NewRepoPGS(conn)
	marketRepo := marketrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	sessionService := sessionservice.New(sessionRepo, config, tokenMaker)
	gameService := gameservice.New(gameRepo)
	frameService := frameservice.New(frameRepo)
	marketService := marketservice.New(marketRepo)

	userHandler := userdelivery.NewHandler(userService, sessionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	gameHandler := gamedelivery.NewHandler(gameService)
	frameHandler := framedelivery.NewHandler(frameService)
	marketHandler := marketdelivery.NewHandler(marketService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS())

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	engine.POST("/auth/register", userHandler.Register)
	engine.POST("/auth/login", userHandler.Login)
	engine.POST("/auth/renew", sessionHandler.RenewAccessToken)

	engine.GET("/users", userHandler.List)
	engine.GET("/users/:id", userHandler.Get)
	engine.GET("/games", gameHandler.List)
	engine.GET("/frames", frameHandler.List)
	engine.GET("/marketplace", marketHandler.List)

	authRoutes := engine.Group("/").Use(middleware.Auth(sessionService.TokenMaker))

	authRoutes.PUT("/users/:id", userHandler.UpdateProfile)
	authRoutes.POST("/games", gameHandler.Create)
	authRoutes.POST("/frames/buy", frameHandler.Buy)
	authRoutes.PUT("/frames/active", frameHandler.SetActive)
	authRoutes.POST("/marketplace/sell", marketHandler.Sell)
	authRoutes.POST("/marketplace/buy", marketHandler.Buy)

	adminRoutes := engine.Group("/admin").
		Use(middleware.Auth(sessionService.TokenMaker), middleware.RequireAdmin())

	adminRoutes.POST("/users/:id/verify", userHandler.Verify)
	adminRoutes.POST("/users/:id/unverify", userHandler.Unverify)
	adminRoutes.POST("/users/:id/ban", userHandler.Ban)
	adminRoutes.POST("/users/:id/unban", userHandler.Unban)
	adminRoutes.PUT("/users/:id/balance", userHandler.SetBalance)
	adminRoutes.POST("/games/:id/approve", gameHandler.Approve)
	adminRoutes.POST("/games/:id/reject", gameHandler.Reject)
	adminRoutes.PUT("/games/:id/featured", gameHandler.SetFeatured)
	adminRoutes.POST("/frames", frameHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("itemtype", catalogpkg.ValidItemType); err != nil {
			return nil, errors.New("cannot register itemtype validator")
		}

		if err := v.RegisterValidation("gamestatus", catalogpkg.ValidGameStatus); err != nil {
			return nil, errors.New("cannot register gamestatus validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
