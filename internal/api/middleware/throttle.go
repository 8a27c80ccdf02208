package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"jobtrack/pkg/models"
	"jobtrack/pkg/utils"
)

// Throttle applies a per-client token bucket at the transport edge. This is
// coarse back-pressure for the whole API surface; the per-operation mutation
// budget lives in the service layer.
func Throttle(rps float64, burst int) echo.MiddlewareFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		l, ok := buckets[ip]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			buckets[ip] = l
		}
		return l
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiterFor(c.RealIP()).Allow() {
				requestID, _ := c.Get("request_id").(string)
				if requestID == "" {
					requestID = utils.GenerateRequestID()
				}
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:     "rate_limited",
					Message:   "Too many requests",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return next(c)
		}
	}
}
