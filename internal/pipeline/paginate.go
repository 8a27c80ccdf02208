package pipeline

import (
	"jobtrack/pkg/models"
)

// Paginate computes the page window for an ordered sequence. TotalPages is
// at least 1 even for zero items, and out-of-range page requests clamp to
// the nearest valid page instead of erroring.
func Paginate(totalItems, itemsPerPage, requestedPage int) models.PaginationState {
	if itemsPerPage <= 0 {
		itemsPerPage = 1
	}

	totalPages := (totalItems + itemsPerPage - 1) / itemsPerPage
	if totalPages < 1 {
		totalPages = 1
	}

	page := requestedPage
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return models.PaginationState{
		CurrentPage:  page,
		ItemsPerPage: itemsPerPage,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
	}
}

// Slice returns the records belonging to the state's current page. A short
// final page yields whatever remains.
func Slice(records []models.Application, state models.PaginationState) []models.Application {
	start := (state.CurrentPage - 1) * state.ItemsPerPage
	if start >= len(records) || start < 0 {
		return []models.Application{}
	}
	end := start + state.ItemsPerPage
	if end > len(records) {
		end = len(records)
	}

	out := make([]models.Application, end-start)
	copy(out, records[start:end])
	return out
}
