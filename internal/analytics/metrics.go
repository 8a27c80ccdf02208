// Package analytics derives metrics and heuristic insights from a record
// snapshot. Everything is recomputed on demand; nothing here is persisted or
// raises a domain error — an empty snapshot yields an all-zero Metrics value.
package analytics

import (
	"fmt"
	"math"
	"time"

	"jobtrack/pkg/models"
)

// FunnelStages are the five pipeline stages used for stage-over-stage
// conversion. Rejected is terminal and tracked outside the funnel.
var FunnelStages = []models.Status{
	models.StatusApplied,
	models.StatusPhone,
	models.StatusTechnical,
	models.StatusFinal,
	models.StatusOffer,
}

// velocityWeeks is how many trailing calendar weeks the velocity series keeps.
const velocityWeeks = 12

// ComputeMetrics derives the full analytics aggregate from a snapshot. now
// anchors the velocity window. The function is pure and deterministic for a
// given (records, now) pair.
func ComputeMetrics(records []models.Application, now time.Time) models.Metrics {
	m := models.Metrics{
		TotalApplications: len(records),
		StatusCounts:      make(map[models.Status]int, len(models.StatusOrder)),
		AvgDaysInStatus:   make(map[models.Status]float64),
	}
	for _, s := range models.StatusOrder {
		m.StatusCounts[s] = 0
	}
	for _, rec := range records {
		m.StatusCounts[rec.Status]++
	}

	total := len(records)
	if total > 0 {
		offers := m.StatusCounts[models.StatusOffer]
		responded := total - m.StatusCounts[models.StatusApplied]
		m.SuccessRate = percentage(offers, total)
		m.ResponseRate = percentage(responded, total)
	}

	m.AvgDaysInStatus = averageDaysInStatus(records)
	m.Velocity = velocitySeries(records, now)
	m.Funnel, m.DropOffs = funnel(records, m.StatusCounts)
	m.DayOfWeekSuccess = dayOfWeekSuccess(records)
	m.WeekOfMonthSuccess = weekOfMonthSuccess(records)
	m.VisaComparison = visaComparison(records)

	return m
}

// averageDaysInStatus averages whole days between DateApplied and the last
// mutation (or creation) per current status. This deliberately approximates
// dwell time from the current record alone; there is no transition log.
func averageDaysInStatus(records []models.Application) map[models.Status]float64 {
	sums := make(map[models.Status]int)
	counts := make(map[models.Status]int)

	for _, rec := range records {
		applied, ok := rec.AppliedDate()
		if !ok {
			continue
		}
		days := int(math.Floor(rec.StatusSince().Sub(applied).Hours() / 24))
		if days < 0 {
			days = 0
		}
		sums[rec.Status] += days
		counts[rec.Status]++
	}

	out := make(map[models.Status]float64, len(sums))
	for status, sum := range sums {
		out[status] = round1(float64(sum) / float64(counts[status]))
	}
	return out
}

// velocitySeries buckets applications into Monday-start calendar weeks and
// returns the trailing 12 weeks ending at now, oldest first, empty weeks
// included.
func velocitySeries(records []models.Application, now time.Time) []models.VelocityPoint {
	counts := make(map[string]int)
	for _, rec := range records {
		applied, ok := rec.AppliedDate()
		if !ok {
			continue
		}
		counts[weekStart(applied).Format(models.DateLayout)]++
	}

	current := weekStart(now)
	series := make([]models.VelocityPoint, 0, velocityWeeks)
	for i := velocityWeeks - 1; i >= 0; i-- {
		ws := current.AddDate(0, 0, -7*i).Format(models.DateLayout)
		series = append(series, models.VelocityPoint{WeekStart: ws, Count: counts[ws]})
	}
	return series
}

// weekStart truncates t to the Monday of its calendar week.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// funnel builds the five-stage funnel and the adjacent-stage drop-off rates.
// Every record enters at Applied, so the first stage counts the whole
// snapshot; later stages count records currently sitting in that status.
func funnel(records []models.Application, statusCounts map[models.Status]int) ([]models.FunnelStage, []models.DropOff) {
	counts := make([]int, len(FunnelStages))
	counts[0] = len(records)
	for i := 1; i < len(FunnelStages); i++ {
		counts[i] = statusCounts[FunnelStages[i]]
	}

	stages := make([]models.FunnelStage, len(FunnelStages))
	for i, status := range FunnelStages {
		conversion := 0.0
		if i == 0 {
			if counts[0] > 0 {
				conversion = 100.0
			}
		} else if counts[i-1] > 0 {
			conversion = clampPct(percentage(counts[i], counts[i-1]))
		}
		stages[i] = models.FunnelStage{
			Status:         status,
			Count:          counts[i],
			ConversionRate: conversion,
		}
	}

	drops := make([]models.DropOff, 0, len(FunnelStages)-1)
	for i := 1; i < len(FunnelStages); i++ {
		rate := 0.0
		if counts[i-1] > 0 {
			rate = clampPct(percentage(counts[i-1]-counts[i], counts[i-1]))
		}
		drops = append(drops, models.DropOff{
			From:      FunnelStages[i-1],
			To:        FunnelStages[i],
			FromCount: counts[i-1],
			Rate:      rate,
		})
	}
	return stages, drops
}

// dayOfWeekSuccess correlates submission weekday with offer outcomes,
// Monday first. Days with no applications are omitted.
func dayOfWeekSuccess(records []models.Application) []models.PeriodSuccess {
	totals := make(map[time.Weekday]int)
	offers := make(map[time.Weekday]int)

	for _, rec := range records {
		applied, ok := rec.AppliedDate()
		if !ok {
			continue
		}
		wd := applied.Weekday()
		totals[wd]++
		if rec.Status == models.StatusOffer {
			offers[wd]++
		}
	}

	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	out := make([]models.PeriodSuccess, 0, len(weekdays))
	for _, wd := range weekdays {
		if totals[wd] == 0 {
			continue
		}
		out = append(out, models.PeriodSuccess{
			Period:      wd.String(),
			Total:       totals[wd],
			Offers:      offers[wd],
			SuccessRate: percentage(offers[wd], totals[wd]),
		})
	}
	return out
}

// weekOfMonthSuccess correlates the week-of-month of submission (Week 1-5)
// with offer outcomes.
func weekOfMonthSuccess(records []models.Application) []models.PeriodSuccess {
	totals := make(map[int]int)
	offers := make(map[int]int)

	for _, rec := range records {
		applied, ok := rec.AppliedDate()
		if !ok {
			continue
		}
		week := (applied.Day()-1)/7 + 1
		totals[week]++
		if rec.Status == models.StatusOffer {
			offers[week]++
		}
	}

	out := make([]models.PeriodSuccess, 0, 5)
	for week := 1; week <= 5; week++ {
		if totals[week] == 0 {
			continue
		}
		out = append(out, models.PeriodSuccess{
			Period:      fmt.Sprintf("Week %d", week),
			Total:       totals[week],
			Offers:      offers[week],
			SuccessRate: percentage(offers[week], totals[week]),
		})
	}
	return out
}

// visaComparison splits the snapshot on the sponsorship flag and compares
// offer rates between the two groups.
func visaComparison(records []models.Application) models.GroupComparison {
	var cmp models.GroupComparison
	for _, rec := range records {
		group := &cmp.Unflagged
		if rec.VisaSponsorship {
			group = &cmp.Flagged
		}
		group.Total++
		if rec.Status == models.StatusOffer {
			group.Offers++
		}
	}

	if cmp.Flagged.Total > 0 {
		cmp.Flagged.SuccessRate = percentage(cmp.Flagged.Offers, cmp.Flagged.Total)
	}
	if cmp.Unflagged.Total > 0 {
		cmp.Unflagged.SuccessRate = percentage(cmp.Unflagged.Offers, cmp.Unflagged.Total)
	}
	cmp.Delta = round1(cmp.Flagged.SuccessRate - cmp.Unflagged.SuccessRate)
	return cmp
}

// percentage returns part/whole as a percent rounded to one decimal place.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
