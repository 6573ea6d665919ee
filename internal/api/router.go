package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/launchstack/benefits-api/docs"
	"github.com/launchstack/benefits-api/internal/api/handler"
	"github.com/launchstack/benefits-api/internal/api/middleware"
	"github.com/launchstack/benefits-api/internal/core/domain"
	"github.com/launchstack/benefits-api/internal/core/ports"
	"github.com/launchstack/benefits-api/internal/infrastructure/http/handlers"
)

// Services groups the use-case implementations the router exposes over HTTP.
type Services struct {
	Auth    ports.AuthService
	Catalog ports.CatalogService
	Claims  ports.ClaimService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	svc Services,
	revocations middleware.RevocationChecker,
	jwtSecret string,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("benefits"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	dealHandler := handler.NewDealHandler(svc.Catalog)
	claimHandler := handler.NewClaimHandler(svc.Claims)
	authRequired := middleware.Auth(jwtSecret, revocations)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)
	e.POST("/v1/users/:id/verify", authHandler.Verify, authRequired, middleware.RBAC(domain.RoleAdmin))

	// --- Catalog routes (public) ---
	e.GET("/v1/deals", dealHandler.List)
	e.GET("/v1/deals/:id", dealHandler.Get)
	e.GET("/v1/categories", dealHandler.Categories)

	// --- Claim routes ---
	e.POST("/v1/claims", claimHandler.Create, authRequired)
	e.GET("/v1/claims", claimHandler.List, authRequired)
	e.GET("/v1/deals/:id/claimed", claimHandler.Claimed, authRequired)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
