package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrack/pkg/models"
	"jobtrack/pkg/utils"
)

// maxBodyBytes bounds mutation payloads; application records are small.
const maxBodyBytes = 256 * 1024

// RequestValidation middleware tags every request with an id and rejects
// oversized mutation bodies before they are read.
func RequestValidation() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := utils.GenerateRequestID()
			c.Set("request_id", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			switch c.Request().Method {
			case http.MethodPost, http.MethodPut:
				if c.Request().ContentLength > maxBodyBytes {
					return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
						Error:     "request_too_large",
						Message:   "Request body too large",
						RequestID: requestID,
						Timestamp: time.Now(),
					})
				}
			}

			return next(c)
		}
	}
}
