package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobtrack/internal/api/handlers"
	"jobtrack/internal/api/middleware"
	"jobtrack/internal/config"
	"jobtrack/internal/tracker"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, svc *tracker.Service) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.Throttle(cfg.Throttle.RequestsPerSecond, cfg.Throttle.Burst))
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(svc))
		health.GET("/live", handlers.LivenessHandler)
		health.GET("/cache", handlers.CacheStatusHandler(svc))
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(svc))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		applications := v1.Group("/applications")
		{
			applications.GET("", handlers.ListApplicationsHandler(svc))
			applications.POST("", handlers.CreateApplicationHandler(svc))
			applications.GET("/:id", handlers.GetApplicationHandler(svc))
			applications.PUT("/:id", handlers.UpdateApplicationHandler(svc))
			applications.DELETE("/:id", handlers.DeleteApplicationHandler(svc))
		}

		v1.GET("/analytics", handlers.AnalyticsHandler(svc))
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Jobtrack API",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
