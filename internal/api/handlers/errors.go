package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrack/internal/security"
	"jobtrack/internal/store"
	"jobtrack/internal/tracker"
	"jobtrack/pkg/models"
	"jobtrack/pkg/utils"
)

// requestIDFrom returns the request id set by the validation middleware,
// generating one for routes that bypass it.
func requestIDFrom(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

// respondError maps domain errors to HTTP responses. Store failures surface
// as user-facing text only; internal detail stays in the logs.
func respondError(c echo.Context, requestID string, err error) error {
	var custom *utils.CustomError
	switch {
	case errors.Is(err, security.ErrInvalidIdentifier), errors.Is(err, security.ErrInvalidPath):
		custom = utils.NewInvalidIdentifierError(err.Error())
	case errors.Is(err, tracker.ErrInvalidInput):
		custom = utils.NewValidationError(err.Error())
	case errors.Is(err, tracker.ErrRateLimited):
		custom = utils.NewRateLimitedError("Mutation budget exceeded, retry shortly")
	case errors.Is(err, store.ErrNotFound):
		custom = utils.NewNotFoundError("Application not found")
	case errors.Is(err, store.ErrUnavailable):
		custom = utils.NewStoreUnavailableError()
	default:
		custom = utils.NewInternalServerError("Internal server error")
	}

	return c.JSON(custom.Code, models.ErrorResponse{
		Error:     http.StatusText(custom.Code),
		Message:   custom.Error(),
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

func respondBadRequest(c echo.Context, requestID, code, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
