// Package pipeline holds the pure display-path computations: filtering,
// sorting and pagination over an in-memory record snapshot. Nothing here
// mutates its input or returns a domain error; malformed records degrade to
// non-matching rather than failing a render.
package pipeline

import (
	"strings"
	"time"

	"jobtrack/pkg/models"
)

// ApplyFilters returns the records matching every active constraint in the
// criteria, preserving input order. now anchors the relative date-range
// windows.
func ApplyFilters(records []models.Application, criteria models.FilterCriteria, now time.Time) []models.Application {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))

	out := make([]models.Application, 0, len(records))
	for _, rec := range records {
		if !matchesSearch(&rec, search) {
			continue
		}
		if !criteria.Status.Matches(rec.Status) {
			continue
		}
		if !matchesDateRange(&rec, criteria.DateRange, now) {
			continue
		}
		if !criteria.Visa.Matches(rec.VisaSponsorship) {
			continue
		}
		if !matchesTags(&rec, criteria.TagIDs) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch(rec *models.Application, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Company), search) ||
		strings.Contains(strings.ToLower(rec.Role), search)
}

// matchesDateRange checks now - dateApplied <= window. Records whose date
// cannot be parsed are excluded rather than silently included.
func matchesDateRange(rec *models.Application, dateRange models.DateRange, now time.Time) bool {
	days := dateRange.Days()
	if days == 0 {
		return true
	}
	applied, ok := rec.AppliedDate()
	if !ok {
		return false
	}
	cutoff := now.AddDate(0, 0, -days)
	return !applied.Before(cutoff)
}

// matchesTags passes when the record carries at least one selected tag. An
// empty selection disables the constraint; a record with no tags never
// matches a non-empty selection.
func matchesTags(rec *models.Application, tagIDs []string) bool {
	if len(tagIDs) == 0 {
		return true
	}
	for _, tag := range rec.Tags {
		for _, id := range tagIDs {
			if tag.ID == id {
				return true
			}
		}
	}
	return false
}
