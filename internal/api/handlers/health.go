package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrack/internal/logging"
	"jobtrack/internal/tracker"
	"jobtrack/pkg/models"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logger := logging.GetGlobalLogger()
	logger.WithField("request_id", requestIDFrom(c)).Debug("Health check requested")

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports readiness, including store reachability.
func ReadinessHandler(svc *tracker.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "ok", "store": "ok"}
		status := "ready"
		code := http.StatusOK

		if err := svc.Ping(c.Request().Context()); err != nil {
			checks["store"] = "unavailable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if svc.CacheStatus().Valid {
			checks["cache"] = "warm"
		} else {
			checks["cache"] = "cold"
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// StatusHandler provides detailed service status
func StatusHandler(svc *tracker.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "operational", "store": "operational"}
		if err := svc.Ping(c.Request().Context()); err != nil {
			checks["store"] = "unavailable"
		}

		cacheStatus := svc.CacheStatus()
		if cacheStatus.Valid {
			checks["cache"] = "warm"
		} else {
			checks["cache"] = "cold"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	})
}
