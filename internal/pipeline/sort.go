package pipeline

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"jobtrack/pkg/models"
)

// SortRecords returns a new slice ordered by the given mode. The input is
// never mutated. The sort is stable so records with equal keys keep their
// incoming relative order.
//
// Company modes compare case-insensitively with locale-aware collation; a
// missing company sorts as the empty string. The status mode ranks by
// pipeline position, with unknown statuses placed after every known one.
func SortRecords(records []models.Application, mode models.SortMode) []models.Application {
	out := make([]models.Application, len(records))
	copy(out, records)

	switch mode {
	case models.SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case models.SortCompanyAsc, models.SortCompanyDesc:
		// Collators carry internal buffers and are not safe for concurrent
		// use, so each sort builds its own.
		c := collate.New(language.English, collate.Loose)
		desc := mode == models.SortCompanyDesc
		sort.SliceStable(out, func(i, j int) bool {
			cmp := c.CompareString(out[i].Company, out[j].Company)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case models.SortStatus:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Status.Rank() < out[j].Status.Rank()
		})
	default: // SortDateDesc
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
