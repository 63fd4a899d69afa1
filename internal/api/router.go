package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sweetshop/inventory-system/internal/api/handler"
	"github.com/sweetshop/inventory-system/internal/api/middleware"
	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/service"
	"github.com/sweetshop/inventory-system/internal/infrastructure/config"
	mongorepo "github.com/sweetshop/inventory-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/sweetshop/inventory-system/internal/infrastructure/db/redis"
	"github.com/sweetshop/inventory-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowedOrigins(cfg),
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	sweetRepo := mongorepo.NewSweetRepository(db)
	cache := redisinfra.NewCatalogCache(rdb, cfg.Redis.CacheTTL, log)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.AdminEmail, cfg.AdminPassword)
	inventoryService := service.NewInventoryService(sweetRepo, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(inventoryService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Catalog routes (authenticated) ---
	sweets := e.Group("/api/sweets", authMiddleware)
	sweets.POST("", sweetHandler.Create, middleware.Permit(domain.OpCreate))
	sweets.GET("", sweetHandler.List, middleware.Permit(domain.OpList))
	sweets.GET("/search", sweetHandler.Search, middleware.Permit(domain.OpSearch))
	sweets.PUT("/:id", sweetHandler.Update, middleware.Permit(domain.OpUpdate))
	sweets.DELETE("/:id", sweetHandler.Delete, middleware.Permit(domain.OpDelete))
	sweets.POST("/:id/purchase", sweetHandler.Purchase, middleware.Permit(domain.OpPurchase))
	sweets.POST("/:id/restock", sweetHandler.Restock, middleware.Permit(domain.OpRestock))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.AllowedOrigins
}
