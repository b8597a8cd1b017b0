package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/clientbook/payments-api/docs"
	"github.com/clientbook/payments-api/internal/api/handler"
	"github.com/clientbook/payments-api/internal/core/service"
	"github.com/clientbook/payments-api/internal/infrastructure/config"
	storemongo "github.com/clientbook/payments-api/internal/infrastructure/db/mongo"
	storeredis "github.com/clientbook/payments-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("payments"))

	// --- Dependencies ---
	clientRepo := storemongo.NewClientRepository(db)
	paymentRepo := storemongo.NewPaymentRepository(db)
	statsCache := storeredis.NewStatsCache(rdb, cfg.StatsCacheTTL)

	clientService := service.NewClientService(clientRepo, paymentRepo, statsCache, log)
	paymentService := service.NewPaymentService(clientRepo, paymentRepo, statsCache, log)
	statsService := service.NewStatsService(clientRepo, paymentRepo, statsCache, log)
	exportService := service.NewExportService(clientRepo, paymentRepo, log)

	clientHandler := handler.NewClientHandler(clientService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	statsHandler := handler.NewStatsHandler(statsService)
	exportHandler := handler.NewExportHandler(exportService)
	importHandler := handler.NewImportHandler(clientService)

	// --- API routes ---
	v1 := e.Group("/v1")
	v1.GET("/clients", clientHandler.List)
	v1.POST("/clients", clientHandler.Create)
	v1.GET("/clients/:id", clientHandler.Get)
	v1.PATCH("/clients/:id", clientHandler.Update)
	v1.DELETE("/clients/:id", clientHandler.Delete)
	v1.GET("/clients/:id/payments", paymentHandler.ListForClient)
	v1.POST("/payments/toggle", paymentHandler.Toggle)
	v1.GET("/stats", statsHandler.Get)
	v1.GET("/export", exportHandler.Download)
	v1.POST("/import", importHandler.Upload)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
