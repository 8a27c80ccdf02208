package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobtrack/internal/tracker"
	"jobtrack/pkg/models"
)

// AnalyticsHandler serves the metrics and insights for the analytics view.
func AnalyticsHandler(svc *tracker.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		metrics, insights, _, err := svc.Analytics(c.Request().Context())
		if err != nil {
			return respondError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, models.AnalyticsResponse{
			Metrics:   metrics,
			Insights:  insights,
			RequestID: requestID,
		})
	}
}

// CacheStatusHandler reports snapshot cache freshness for diagnostics.
func CacheStatusHandler(svc *tracker.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, svc.CacheStatus())
	}
}
