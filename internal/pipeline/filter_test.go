package pipeline

import (
	"testing"
	"time"

	"jobtrack/pkg/models"
)

var filterNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func filterFixtures() []models.Application {
	return []models.Application{
		{
			ID: "a1", Company: "Acme Corp", Role: "Backend Engineer",
			DateApplied: "2026-03-01", Status: models.StatusApplied,
			VisaSponsorship: true,
			Tags:            []models.Tag{{ID: "tag-remote", Category: models.TagRemoteWork, Label: "Remote"}},
		},
		{
			ID: "a2", Company: "Globex", Role: "Data Analyst",
			DateApplied: "2026-02-10", Status: models.StatusPhone,
			VisaSponsorship: false,
			Tags:            []models.Tag{{ID: "tag-fintech", Category: models.TagIndustry, Label: "Fintech"}},
		},
		{
			ID: "a3", Company: "Initech", Role: "Platform Engineer",
			DateApplied: "2025-11-20", Status: models.StatusRejected,
			VisaSponsorship: false,
		},
		{
			ID: "a4", Company: "Hooli", Role: "SRE",
			DateApplied: "not-a-date", Status: models.StatusOffer,
			VisaSponsorship: true,
		},
	}
}

func ids(records []models.Application) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Application, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got ids %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got ids %v, want %v", gotIDs, want)
		}
	}
}

func TestApplyFilters_EmptyCriteriaMatchesAll(t *testing.T) {
	got := ApplyFilters(filterFixtures(), models.FilterCriteria{}, filterNow)
	assertIDs(t, got, "a1", "a2", "a3", "a4")
}

func TestApplyFilters_TextSearch(t *testing.T) {
	records := filterFixtures()

	// Case-insensitive, matches company or role.
	got := ApplyFilters(records, models.FilterCriteria{Search: "aCmE"}, filterNow)
	assertIDs(t, got, "a1")

	got = ApplyFilters(records, models.FilterCriteria{Search: "engineer"}, filterNow)
	assertIDs(t, got, "a1", "a3")

	got = ApplyFilters(records, models.FilterCriteria{Search: "no-such-thing"}, filterNow)
	assertIDs(t, got)
}

func TestApplyFilters_Status(t *testing.T) {
	records := filterFixtures()

	got := ApplyFilters(records, models.FilterCriteria{Status: models.StatusFilter(models.StatusPhone)}, filterNow)
	assertIDs(t, got, "a2")

	got = ApplyFilters(records, models.FilterCriteria{Status: models.StatusFilterAll}, filterNow)
	assertIDs(t, got, "a1", "a2", "a3", "a4")
}

func TestApplyFilters_DateRange(t *testing.T) {
	records := filterFixtures()

	got := ApplyFilters(records, models.FilterCriteria{DateRange: models.DateRangeWeek}, filterNow)
	assertIDs(t, got, "a1")

	got = ApplyFilters(records, models.FilterCriteria{DateRange: models.DateRangeMonth}, filterNow)
	assertIDs(t, got, "a1", "a2")

	got = ApplyFilters(records, models.FilterCriteria{DateRange: models.DateRangeQuarter}, filterNow)
	assertIDs(t, got, "a1", "a2")
}

func TestApplyFilters_UnparseableDateExcludedFromDateRange(t *testing.T) {
	// a4 has a malformed date: it must never match an active date window,
	// but still matches when the window is disabled.
	records := filterFixtures()

	got := ApplyFilters(records, models.FilterCriteria{DateRange: models.DateRangeQuarter}, filterNow)
	for _, r := range got {
		if r.ID == "a4" {
			t.Error("record with unparseable date matched an active date filter")
		}
	}

	got = ApplyFilters(records, models.FilterCriteria{DateRange: models.DateRangeAll}, filterNow)
	assertIDs(t, got, "a1", "a2", "a3", "a4")
}

func TestApplyFilters_VisaFlag(t *testing.T) {
	records := filterFixtures()

	got := ApplyFilters(records, models.FilterCriteria{Visa: models.VisaFilterYes}, filterNow)
	assertIDs(t, got, "a1", "a4")

	got = ApplyFilters(records, models.FilterCriteria{Visa: models.VisaFilterNo}, filterNow)
	assertIDs(t, got, "a2", "a3")
}

func TestApplyFilters_Tags(t *testing.T) {
	records := filterFixtures()

	got := ApplyFilters(records, models.FilterCriteria{TagIDs: []string{"tag-remote", "tag-fintech"}}, filterNow)
	assertIDs(t, got, "a1", "a2")

	// Records without tags never match a non-empty tag selection.
	got = ApplyFilters(records, models.FilterCriteria{TagIDs: []string{"tag-remote"}}, filterNow)
	for _, r := range got {
		if r.ID == "a3" || r.ID == "a4" {
			t.Errorf("untagged record %s matched a tag filter", r.ID)
		}
	}
}

func TestApplyFilters_SubsetAndIdempotent(t *testing.T) {
	records := filterFixtures()
	criteria := models.FilterCriteria{Search: "e", Visa: models.VisaFilterNo}

	once := ApplyFilters(records, criteria, filterNow)
	twice := ApplyFilters(once, criteria, filterNow)

	if len(once) > len(records) {
		t.Fatal("filtered result larger than input")
	}
	assertIDs(t, twice, ids(once)...)
}

func TestApplyFilters_ConjunctionIsOrderIndependent(t *testing.T) {
	records := filterFixtures()
	statusOnly := models.FilterCriteria{Status: models.StatusFilter(models.StatusApplied)}
	visaOnly := models.FilterCriteria{Visa: models.VisaFilterYes}
	both := models.FilterCriteria{Status: models.StatusFilter(models.StatusApplied), Visa: models.VisaFilterYes}

	combined := ApplyFilters(records, both, filterNow)
	statusThenVisa := ApplyFilters(ApplyFilters(records, statusOnly, filterNow), visaOnly, filterNow)
	visaThenStatus := ApplyFilters(ApplyFilters(records, visaOnly, filterNow), statusOnly, filterNow)

	assertIDs(t, statusThenVisa, ids(combined)...)
	assertIDs(t, visaThenStatus, ids(combined)...)
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	records := filterFixtures()
	before := ids(records)

	ApplyFilters(records, models.FilterCriteria{Search: "acme"}, filterNow)

	after := ids(records)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("ApplyFilters reordered its input")
		}
	}
}
