package models

// Metrics is the derived analytics aggregate. It is recomputed on demand from
// a record snapshot and never persisted.
//
// Time-in-status is inferred from the current record alone (UpdatedAt, or
// CreatedAt when never mutated, minus DateApplied): there is no transition
// log, so multi-hop status changes between snapshots lose intermediate dwell
// time. This is a known approximation carried over deliberately — adding real
// history tracking would change reported numbers.
type Metrics struct {
	TotalApplications int            `json:"total_applications"`
	StatusCounts      map[Status]int `json:"status_counts"`

	// SuccessRate is offers/total, ResponseRate is (total-applied)/total,
	// both as percentages rounded to one decimal place.
	SuccessRate  float64 `json:"success_rate"`
	ResponseRate float64 `json:"response_rate"`

	// AvgDaysInStatus averages whole days since applying over the records
	// currently sitting in each status.
	AvgDaysInStatus map[Status]float64 `json:"avg_days_in_status"`

	// Velocity covers the last 12 calendar weeks (Monday-start), oldest
	// first, including empty weeks.
	Velocity []VelocityPoint `json:"velocity"`

	Funnel   []FunnelStage `json:"funnel"`
	DropOffs []DropOff     `json:"drop_offs"`

	DayOfWeekSuccess   []PeriodSuccess `json:"day_of_week_success"`
	WeekOfMonthSuccess []PeriodSuccess `json:"week_of_month_success"`

	VisaComparison GroupComparison `json:"visa_comparison"`
}

// VelocityPoint is the application count for one calendar week.
type VelocityPoint struct {
	WeekStart string `json:"week_start"` // YYYY-MM-DD, Monday
	Count     int    `json:"count"`
}

// FunnelStage is one of the five pipeline stages with its record count and
// the conversion rate from the previous stage (0 when the previous stage is
// empty, clamped into [0,100]).
type FunnelStage struct {
	Status         Status  `json:"status"`
	Count          int     `json:"count"`
	ConversionRate float64 `json:"conversion_rate"`
}

// DropOff is the fraction of records lost between two adjacent funnel stages.
type DropOff struct {
	From      Status  `json:"from"`
	To        Status  `json:"to"`
	FromCount int     `json:"from_count"`
	Rate      float64 `json:"rate"`
}

// PeriodSuccess correlates a submission period (weekday name or week-of-month
// label) with offer outcomes.
type PeriodSuccess struct {
	Period      string  `json:"period"`
	Total       int     `json:"total"`
	Offers      int     `json:"offers"`
	SuccessRate float64 `json:"success_rate"`
}

// GroupStats summarizes one side of a two-group comparison.
type GroupStats struct {
	Total       int     `json:"total"`
	Offers      int     `json:"offers"`
	SuccessRate float64 `json:"success_rate"`
}

// GroupComparison compares sponsorship-flagged records against the rest.
type GroupComparison struct {
	Flagged   GroupStats `json:"flagged"`
	Unflagged GroupStats `json:"unflagged"`
	// Delta is Flagged.SuccessRate - Unflagged.SuccessRate in points.
	Delta float64 `json:"delta"`
}
