package main

import (
	"net/http"
	"os"
	"time"

	"github.com/Everilll/CateringKita/config"
	"github.com/Everilll/CateringKita/database"
	"github.com/Everilll/CateringKita/handlers"
	"github.com/Everilll/CateringKita/middleware"
	"github.com/Everilll/CateringKita/repository"
	"github.com/Everilll/CateringKita/routes"
	"github.com/Everilll/CateringKita/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)

	gin.SetMode(cfg.GinMode)

	db, err := database.Initialize(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database initialization failed")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database connected and migrated")

	catalogRepo := repository.NewCatalogRepository(db)
	identityRepo := repository.NewIdentityRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := services.NewAuthService(identityRepo, log)
	catalogService := services.NewCatalogService(catalogRepo, identityRepo, log)
	orderService := services.NewOrderService(orderRepo, catalogRepo, identityRepo, log)

	auth := middleware.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTTTLHours)

	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	// CORS for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "CateringKita API",
		})
	})

	routes.Setup(r, auth, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, auth),
		Orders:   handlers.NewOrderHandler(orderService),
		Vendors:  handlers.NewVendorHandler(catalogService, orderService),
		Menus:    handlers.NewMenuHandler(catalogService),
		Category: handlers.NewCategoryHandler(catalogService),
		Admin:    handlers.NewAdminHandler(orderService, catalogService, identityRepo),
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if cfg.GinMode == gin.DebugMode {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
	return logger
}
