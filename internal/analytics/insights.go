package analytics

import (
	"fmt"

	"jobtrack/pkg/models"
)

// Insight-generation thresholds. Kept together so the heuristics can be
// audited in one place.
const (
	minSampleForRates    = 10
	strongSuccessRate    = 15.0
	weakSuccessRate      = 5.0
	lowResponseRate      = 20.0
	highResponseRate     = 50.0
	dropOffAlertRate     = 70.0
	dropOffAlertBaseline = 3
	slowStatusDays       = 30.0
	minPeriodSamples     = 3
	visaDeltaPoints      = 5.0
)

// insightRule pairs a predicate over metrics with its message rendering.
// Rules run in slice order, so the output order of GenerateInsights is the
// order of this table.
type insightRule struct {
	name     string
	generate func(m models.Metrics) []string
}

// GenerateInsights renders human-readable observations from computed
// metrics. For an empty snapshot it returns exactly one prompt-to-start
// message.
func GenerateInsights(m models.Metrics) []string {
	if m.TotalApplications == 0 {
		return []string{"Add your first application to start tracking your search."}
	}

	var out []string
	for _, rule := range insightRules {
		out = append(out, rule.generate(m)...)
	}
	return out
}

var insightRules = []insightRule{
	{
		name: "success-rate-strong",
		generate: func(m models.Metrics) []string {
			if m.SuccessRate < strongSuccessRate {
				return nil
			}
			return []string{fmt.Sprintf(
				"Your offer rate of %.1f%% is above typical conversion — whatever you're doing, keep doing it.",
				m.SuccessRate)}
		},
	},
	{
		name: "success-rate-weak",
		generate: func(m models.Metrics) []string {
			if m.TotalApplications < minSampleForRates || m.SuccessRate >= weakSuccessRate {
				return nil
			}
			return []string{fmt.Sprintf(
				"Your offer rate is %.1f%% across %d applications — it may be worth targeting roles that better match your profile.",
				m.SuccessRate, m.TotalApplications)}
		},
	},
	{
		name: "response-rate-low",
		generate: func(m models.Metrics) []string {
			if m.TotalApplications < minSampleForRates || m.ResponseRate >= lowResponseRate {
				return nil
			}
			return []string{fmt.Sprintf(
				"Only %.1f%% of your applications have moved past Applied — consider tailoring your materials per role.",
				m.ResponseRate)}
		},
	},
	{
		name: "response-rate-high",
		generate: func(m models.Metrics) []string {
			if m.ResponseRate < highResponseRate {
				return nil
			}
			return []string{fmt.Sprintf(
				"%.1f%% of your applications got a response — your profile is landing well.",
				m.ResponseRate)}
		},
	},
	{
		name: "velocity-trend",
		generate: func(m models.Metrics) []string {
			n := len(m.Velocity)
			if n < 2 {
				return nil
			}
			thisWeek := m.Velocity[n-1].Count
			lastWeek := m.Velocity[n-2].Count
			switch {
			case lastWeek > 0 && thisWeek < lastWeek:
				return []string{fmt.Sprintf(
					"You've sent %d applications this week, down from %d last week — keep the momentum up.",
					thisWeek, lastWeek)}
			case thisWeek > lastWeek && thisWeek > 0:
				return []string{fmt.Sprintf(
					"You've sent %d applications this week, up from %d last week — nice pace.",
					thisWeek, lastWeek)}
			}
			return nil
		},
	},
	{
		name: "funnel-drop-off-alerts",
		generate: func(m models.Metrics) []string {
			var out []string
			for _, d := range m.DropOffs {
				if d.FromCount > dropOffAlertBaseline && d.Rate > dropOffAlertRate {
					out = append(out, fmt.Sprintf(
						"%.1f%% of candidates drop between %s and %s — that stage deserves extra preparation.",
						d.Rate, d.From, d.To))
				}
			}
			return out
		},
	},
	{
		name: "slowest-status",
		generate: func(m models.Metrics) []string {
			var slowest models.Status
			var worst float64
			for status, days := range m.AvgDaysInStatus {
				if status.IsTerminal() {
					continue
				}
				if days > slowStatusDays && days > worst {
					worst = days
					slowest = status
				}
			}
			if slowest == "" {
				return nil
			}
			return []string{fmt.Sprintf(
				"Applications sit in %s for %.1f days on average — a follow-up nudge might move them along.",
				slowest, worst)}
		},
	},
	{
		name: "highest-drop-off",
		generate: func(m models.Metrics) []string {
			var biggest *models.DropOff
			for i := range m.DropOffs {
				d := &m.DropOffs[i]
				if d.FromCount == 0 || d.Rate == 0 {
					continue
				}
				if biggest == nil || d.Rate > biggest.Rate {
					biggest = d
				}
			}
			if biggest == nil {
				return nil
			}
			return []string{fmt.Sprintf(
				"Your biggest drop-off is %s → %s at %.1f%%.",
				biggest.From, biggest.To, biggest.Rate)}
		},
	},
	{
		name: "best-day-of-week",
		generate: func(m models.Metrics) []string {
			best := bestPeriod(m.DayOfWeekSuccess)
			if best == nil {
				return nil
			}
			return []string{fmt.Sprintf(
				"Applications submitted on a %s convert best for you (%.1f%% offer rate).",
				best.Period, best.SuccessRate)}
		},
	},
	{
		name: "best-week-of-month",
		generate: func(m models.Metrics) []string {
			best := bestPeriod(m.WeekOfMonthSuccess)
			if best == nil {
				return nil
			}
			return []string{fmt.Sprintf(
				"%s of the month has been your strongest window (%.1f%% offer rate).",
				best.Period, best.SuccessRate)}
		},
	},
	{
		name: "visa-group-comparison",
		generate: func(m models.Metrics) []string {
			cmp := m.VisaComparison
			if cmp.Flagged.Total == 0 || cmp.Unflagged.Total == 0 {
				return nil
			}
			delta := cmp.Delta
			if delta < 0 {
				delta = -delta
			}
			if delta <= visaDeltaPoints {
				return nil
			}
			if cmp.Delta > 0 {
				return []string{fmt.Sprintf(
					"Sponsorship-flagged applications convert %.1f points better for you (%.1f%% vs %.1f%%).",
					delta, cmp.Flagged.SuccessRate, cmp.Unflagged.SuccessRate)}
			}
			return []string{fmt.Sprintf(
				"Applications without a sponsorship requirement convert %.1f points better (%.1f%% vs %.1f%%).",
				delta, cmp.Unflagged.SuccessRate, cmp.Flagged.SuccessRate)}
		},
	},
}

// bestPeriod picks the highest-converting period among those with enough
// samples to be reportable. Requires at least one offer.
func bestPeriod(periods []models.PeriodSuccess) *models.PeriodSuccess {
	var best *models.PeriodSuccess
	for i := range periods {
		p := &periods[i]
		if p.Total < minPeriodSamples || p.Offers == 0 {
			continue
		}
		if best == nil || p.SuccessRate > best.SuccessRate {
			best = p
		}
	}
	return best
}
