package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jake-esse/ai-broker/internal/api/handler"
	"github.com/jake-esse/ai-broker/internal/api/middleware"
	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// Deps carries everything the router needs. Services are constructed in main
// so the messaging and storage clients share one lifecycle.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string

	Auth     ports.AuthService
	Loads    ports.LoadService
	Quotes   ports.QuoteService
	Carriers ports.CarrierMatcher
	Intake   handler.Enqueuer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("broker"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	emailHandler := handler.NewEmailHandler(d.Intake)
	loadHandler := handler.NewLoadHandler(d.Loads)
	quoteHandler := handler.NewQuoteHandler(d.Quotes)
	carrierHandler := handler.NewCarrierHandler(d.Carriers)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Inbound email webhook (provider-authenticated upstream) ---
	e.POST("/v1/emails/inbound", emailHandler.Inbound)
	e.POST("/v1/emails/inbound/batch", emailHandler.InboundBatch)

	// --- Dashboard routes (JWT + role checks) ---
	auth := middleware.Auth(d.JWTSecret)
	operators := middleware.RBAC(domain.RoleAdmin, domain.RoleBroker)

	v1 := e.Group("/v1", auth, operators)
	v1.POST("/loads", loadHandler.Create)
	v1.GET("/loads", loadHandler.List)
	v1.GET("/loads/:load_number", loadHandler.Get)
	v1.POST("/loads/:load_number/quote", quoteHandler.Generate)
	v1.GET("/loads/:load_number/carriers", carrierHandler.Match)
	v1.GET("/quotes/:id", quoteHandler.Get)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
