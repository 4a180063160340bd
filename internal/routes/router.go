package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"auth-service/internal/config"
	"auth-service/internal/delivery/http/handler"
	"auth-service/internal/logger"
	"auth-service/internal/middleware"
)

// HealthChecker is satisfied by both the postgres and the in-memory store.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Services bundles what the HTTP layer needs from the use case layer.
type Services struct {
	Auth   *handler.AuthHandler
	Orders *handler.OrderHandler
	// Authenticator guards the order and customer routes.
	Authenticator middleware.Authenticator
}

func SetupRoutes(cfg *config.Config, health HealthChecker, svc Services) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := health.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	svc.Auth.RegisterRoutes(router)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(svc.Authenticator))
	{
		svc.Orders.RegisterRoutes(protected)
	}

	logger.Info("All routes initialized")
	return router
}
