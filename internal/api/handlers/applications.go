package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobtrack/internal/tracker"
	"jobtrack/pkg/models"
)

var validate = validator.New()

// ListApplicationsHandler serves the filtered, sorted, paginated list view.
func ListApplicationsHandler(svc *tracker.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		opts := tracker.ListOptions{
			Criteria: models.FilterCriteria{
				Search:    c.QueryParam("search"),
				Status:    models.StatusFilter(c.QueryParam("status")),
				DateRange: models.DateRange(c.QueryParam("date_range")),
				Visa:      models.VisaFilter(c.QueryParam("visa")),
				TagIDs:    splitTagIDs(c.QueryParam("tags")),
			},
			Sort: models.SortMode(c.QueryParam("sort")),
		}
		if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
			opts.Page = page
		}
		if size, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
			opts.PageSize = size
		}

		result, err := svc.List(c.Request().Context(), opts)
		if err != nil {
			return respondError(c, requestID, err)
		}

		source := "store"
		if result.FromCache {
			source = "cache"
		}
		c.Response().Header().Set("X-Cache", source)
		return c.JSON(http.StatusOK, models.ListResponse{
			Applications: result.Records,
			Pagination:   result.Pagination,
			Source:       source,
			RequestID:    requestID,
		})
	}
}

// GetApplicationHandler serves one record by id.
func GetApplicationHandler(svc *tracker.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		app, err := svc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return respondError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, models.ApplicationResponse{
			Application: *app,
			RequestID:   requestID,
		})
	}
}

// CreateApplicationHandler stores a new application.
func CreateApplicationHandler(svc *tracker.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		var req models.CreateApplicationRequest
		if err := c.Bind(&req); err != nil {
			return respondBadRequest(c, requestID, "invalid_request", "Invalid request body")
		}
		if err := validate.Struct(&req); err != nil {
			return respondBadRequest(c, requestID, "validation_failed", err.Error())
		}

		app, err := svc.Create(c.Request().Context(), req)
		if err != nil {
			return respondError(c, requestID, err)
		}
		return c.JSON(http.StatusCreated, models.ApplicationResponse{
			Application: *app,
			RequestID:   requestID,
		})
	}
}

// UpdateApplicationHandler applies a partial update to an application.
func UpdateApplicationHandler(svc *tracker.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		var req models.UpdateApplicationRequest
		if err := c.Bind(&req); err != nil {
			return respondBadRequest(c, requestID, "invalid_request", "Invalid request body")
		}
		if err := validate.Struct(&req); err != nil {
			return respondBadRequest(c, requestID, "validation_failed", err.Error())
		}

		app, err := svc.Update(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return respondError(c, requestID, err)
		}
		return c.JSON(http.StatusOK, models.ApplicationResponse{
			Application: *app,
			RequestID:   requestID,
		})
	}
}

// DeleteApplicationHandler removes an application.
func DeleteApplicationHandler(svc *tracker.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		if err := svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
			return respondError(c, requestID, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func splitTagIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
