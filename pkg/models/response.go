package models

import "time"

// ListResponse is the list-view payload: the filtered, sorted page of records
// plus the pagination state that produced it.
type ListResponse struct {
	Applications []Application   `json:"applications"`
	Pagination   PaginationState `json:"pagination"`
	Source       string          `json:"source"` // "cache" or "store"
	RequestID    string          `json:"request_id"`
}

// AnalyticsResponse is the analytics-view payload.
type AnalyticsResponse struct {
	Metrics   Metrics  `json:"metrics"`
	Insights  []string `json:"insights"`
	RequestID string   `json:"request_id"`
}

// ApplicationResponse wraps a single record.
type ApplicationResponse struct {
	Application Application `json:"application"`
	RequestID   string      `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
