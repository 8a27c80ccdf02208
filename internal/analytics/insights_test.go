package analytics

import (
	"strings"
	"testing"

	"jobtrack/pkg/models"
)

func containsSubstring(insights []string, sub string) bool {
	for _, s := range insights {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestGenerateInsights_EmptyMetricsPromptsToStart(t *testing.T) {
	insights := GenerateInsights(ComputeMetrics(nil, analyticsNow))
	if len(insights) != 1 {
		t.Fatalf("got %d insights for empty metrics, want exactly 1", len(insights))
	}
	if !strings.Contains(insights[0], "first application") {
		t.Errorf("empty-state insight = %q, want prompt to start", insights[0])
	}
}

func TestGenerateInsights_StrongSuccessRate(t *testing.T) {
	m := models.Metrics{TotalApplications: 10, SuccessRate: 20}
	if !containsSubstring(GenerateInsights(m), "offer rate of 20.0%") {
		t.Error("no strong-success insight for a 20% offer rate")
	}
}

func TestGenerateInsights_WeakSuccessRateNeedsSample(t *testing.T) {
	// Below the sample floor, no commentary.
	m := models.Metrics{TotalApplications: 4, SuccessRate: 0}
	if containsSubstring(GenerateInsights(m), "targeting roles") {
		t.Error("weak-success insight emitted for a tiny sample")
	}

	m.TotalApplications = 12
	if !containsSubstring(GenerateInsights(m), "targeting roles") {
		t.Error("no weak-success insight for 0% over 12 applications")
	}
}

func TestGenerateInsights_ResponseRateCommentary(t *testing.T) {
	low := models.Metrics{TotalApplications: 15, ResponseRate: 10}
	if !containsSubstring(GenerateInsights(low), "moved past Applied") {
		t.Error("no low-response insight for 10% over 15 applications")
	}

	high := models.Metrics{TotalApplications: 6, ResponseRate: 60}
	if !containsSubstring(GenerateInsights(high), "got a response") {
		t.Error("no high-response insight for 60%")
	}
}

func TestGenerateInsights_VelocityTrend(t *testing.T) {
	m := models.Metrics{
		TotalApplications: 5,
		Velocity: []models.VelocityPoint{
			{WeekStart: "2026-02-23", Count: 4},
			{WeekStart: "2026-03-02", Count: 1},
		},
	}
	if !containsSubstring(GenerateInsights(m), "down from 4 last week") {
		t.Error("no slowdown insight when this week trails last week")
	}

	m.Velocity[0].Count, m.Velocity[1].Count = 1, 4
	if !containsSubstring(GenerateInsights(m), "up from 1 last week") {
		t.Error("no pickup insight when this week beats last week")
	}
}

func TestGenerateInsights_DropOffAlertThresholds(t *testing.T) {
	m := models.Metrics{
		TotalApplications: 12,
		DropOffs: []models.DropOff{
			{From: models.StatusApplied, To: models.StatusPhone, FromCount: 12, Rate: 83.3},
		},
	}
	if !containsSubstring(GenerateInsights(m), "drop between Applied and Phone Screen") {
		t.Error("no drop-off alert for 83.3% over baseline 12")
	}

	// Baseline too small: no alert even at a high rate.
	m.DropOffs[0].FromCount = 3
	if containsSubstring(GenerateInsights(m), "drop between") {
		t.Error("drop-off alert emitted below the baseline floor")
	}

	// Rate at the threshold (not above): no alert.
	m.DropOffs[0].FromCount = 12
	m.DropOffs[0].Rate = 70
	if containsSubstring(GenerateInsights(m), "drop between") {
		t.Error("drop-off alert emitted at exactly 70%")
	}
}

func TestGenerateInsights_SlowestStatusSkipsTerminal(t *testing.T) {
	m := models.Metrics{
		TotalApplications: 8,
		AvgDaysInStatus: map[models.Status]float64{
			models.StatusPhone:    45,
			models.StatusRejected: 120, // terminal, must not alert
		},
	}
	insights := GenerateInsights(m)
	if !containsSubstring(insights, "sit in Phone Screen for 45.0 days") {
		t.Error("no slow-status alert for 45 days in Phone Screen")
	}
	if containsSubstring(insights, "Rejected") {
		t.Error("slow-status alert emitted for a terminal status")
	}
}

func TestGenerateInsights_HighestDropOff(t *testing.T) {
	m := models.Metrics{
		TotalApplications: 9,
		DropOffs: []models.DropOff{
			{From: models.StatusApplied, To: models.StatusPhone, FromCount: 9, Rate: 40},
			{From: models.StatusPhone, To: models.StatusTechnical, FromCount: 5, Rate: 60},
		},
	}
	if !containsSubstring(GenerateInsights(m), "Phone Screen → Technical Interview at 60.0%") {
		t.Error("highest drop-off insight missing or wrong pair")
	}
}

func TestGenerateInsights_BestPeriodsRequireSamples(t *testing.T) {
	m := models.Metrics{
		TotalApplications: 10,
		DayOfWeekSuccess: []models.PeriodSuccess{
			{Period: "Monday", Total: 2, Offers: 2, SuccessRate: 100}, // too few samples
			{Period: "Tuesday", Total: 5, Offers: 2, SuccessRate: 40},
		},
		WeekOfMonthSuccess: []models.PeriodSuccess{
			{Period: "Week 1", Total: 4, Offers: 1, SuccessRate: 25},
		},
	}
	insights := GenerateInsights(m)
	if !containsSubstring(insights, "on a Tuesday") {
		t.Error("best weekday insight missing or picked an under-sampled day")
	}
	if containsSubstring(insights, "on a Monday") {
		t.Error("best weekday insight used a day with fewer than 3 samples")
	}
	if !containsSubstring(insights, "Week 1 of the month") {
		t.Error("best week-of-month insight missing")
	}
}

func TestGenerateInsights_VisaComparisonNeedsDelta(t *testing.T) {
	m := models.Metrics{
		TotalApplications: 10,
		VisaComparison: models.GroupComparison{
			Flagged:   models.GroupStats{Total: 5, Offers: 1, SuccessRate: 20},
			Unflagged: models.GroupStats{Total: 5, Offers: 1, SuccessRate: 17},
			Delta:     3,
		},
	}
	if containsSubstring(GenerateInsights(m), "points better") {
		t.Error("visa insight emitted for a 3-point delta")
	}

	m.VisaComparison.Unflagged.SuccessRate = 40
	m.VisaComparison.Delta = -20
	if !containsSubstring(GenerateInsights(m), "without a sponsorship requirement") {
		t.Error("no visa insight for a 20-point delta favoring unflagged")
	}
}

func TestGenerateInsights_OrderFollowsRuleTable(t *testing.T) {
	m := models.Metrics{
		TotalApplications: 20,
		SuccessRate:       25,
		ResponseRate:      60,
		DropOffs: []models.DropOff{
			{From: models.StatusApplied, To: models.StatusPhone, FromCount: 20, Rate: 90},
		},
	}
	insights := GenerateInsights(m)

	successIdx, dropIdx := -1, -1
	for i, s := range insights {
		if strings.Contains(s, "offer rate of") {
			successIdx = i
		}
		if strings.Contains(s, "drop between") {
			dropIdx = i
		}
	}
	if successIdx == -1 || dropIdx == -1 {
		t.Fatalf("expected both success and drop-off insights, got %v", insights)
	}
	if successIdx > dropIdx {
		t.Error("success-rate commentary should precede funnel drop-off alerts")
	}
}
