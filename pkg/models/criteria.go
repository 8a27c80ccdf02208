package models

// StatusFilter selects either every status or one specific status.
// The zero value ("") behaves like StatusFilterAll.
type StatusFilter string

const StatusFilterAll StatusFilter = "all"

// Matches reports whether the given status passes the filter.
func (f StatusFilter) Matches(s Status) bool {
	if f == "" || f == StatusFilterAll {
		return true
	}
	return Status(f) == s
}

// DateRange is a relative date window over DateApplied.
type DateRange string

const (
	DateRangeAll     DateRange = "all"
	DateRangeWeek    DateRange = "week"
	DateRangeMonth   DateRange = "month"
	DateRangeQuarter DateRange = "quarter"
)

// Days returns the window length in days, or 0 when the range is unbounded.
func (r DateRange) Days() int {
	switch r {
	case DateRangeWeek:
		return 7
	case DateRangeMonth:
		return 30
	case DateRangeQuarter:
		return 90
	default:
		return 0
	}
}

// VisaFilter selects on the sponsorship flag.
type VisaFilter string

const (
	VisaFilterAll VisaFilter = "all"
	VisaFilterYes VisaFilter = "true"
	VisaFilterNo  VisaFilter = "false"
)

// Matches reports whether the given flag passes the filter.
func (f VisaFilter) Matches(flag bool) bool {
	switch f {
	case VisaFilterYes:
		return flag
	case VisaFilterNo:
		return !flag
	default:
		return true
	}
}

// FilterCriteria is the value object the UI sends for list views. All active
// constraints are ANDed; zero values disable each constraint.
type FilterCriteria struct {
	Search    string       `json:"search"`
	Status    StatusFilter `json:"status"`
	DateRange DateRange    `json:"date_range"`
	Visa      VisaFilter   `json:"visa"`
	TagIDs    []string     `json:"tag_ids"`
}

// SortMode enumerates the five supported total orders.
type SortMode string

const (
	SortDateDesc    SortMode = "date-desc"
	SortDateAsc     SortMode = "date-asc"
	SortCompanyAsc  SortMode = "company-asc"
	SortCompanyDesc SortMode = "company-desc"
	SortStatus      SortMode = "status"
)

// PaginationState is the deterministic page window over an ordered sequence.
// TotalPages is at least 1 even for an empty sequence so consumers always
// have a well-defined page 1.
type PaginationState struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
}
