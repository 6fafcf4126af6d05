package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/feedstream/feed-api/docs"
	"github.com/feedstream/feed-api/internal/api/handler"
	"github.com/feedstream/feed-api/internal/api/middleware"
	"github.com/feedstream/feed-api/internal/core/ports"
	"github.com/feedstream/feed-api/internal/realtime"
)

// Dependencies carries everything the router mounts. Redis is nil when the
// realtime bridge is disabled; GraphQL is the fully wired /graphql
// handler.
type Dependencies struct {
	Auth    ports.AuthService
	Posts   ports.PostService
	Hub     *realtime.Hub
	GraphQL echo.HandlerFunc
	Mongo   *mongo.Database
	Redis   *redis.Client
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("feed"))
	// Soft auth: derives the caller identity, never rejects.
	e.Use(middleware.Auth(deps.Auth))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.PUT("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/status", authHandler.GetStatus)
	e.PATCH("/auth/status", authHandler.UpdateStatus)

	// --- Feed routes ---
	feedHandler := handler.NewFeedHandler(deps.Posts)
	e.GET("/feed/posts", feedHandler.List)
	e.POST("/feed/post", feedHandler.Create)
	e.GET("/feed/post/:id", feedHandler.Get)
	e.PUT("/feed/post/:id", feedHandler.Update)
	e.DELETE("/feed/post/:id", feedHandler.Delete)

	// --- GraphQL surface ---
	e.POST("/graphql", deps.GraphQL)

	// --- Realtime subscription feed ---
	e.GET("/socket", realtime.WSHandler(deps.Hub, deps.Logger))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
