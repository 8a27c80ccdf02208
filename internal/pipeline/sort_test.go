package pipeline

import (
	"sort"
	"testing"
	"time"

	"jobtrack/pkg/models"
)

func sortFixtures() []models.Application {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Application{
		{ID: "s1", Company: "zeta", Status: models.StatusOffer, CreatedAt: base.Add(48 * time.Hour)},
		{ID: "s2", Company: "Acme", Status: models.StatusRejected, CreatedAt: base},
		{ID: "s3", Company: "beta", Status: models.StatusApplied, CreatedAt: base.Add(24 * time.Hour)},
		{ID: "s4", Company: "", Status: models.StatusPhone, CreatedAt: base.Add(72 * time.Hour)},
	}
}

func TestSortRecords_DateModes(t *testing.T) {
	records := sortFixtures()

	got := SortRecords(records, models.SortDateDesc)
	assertIDs(t, got, "s4", "s1", "s3", "s2")

	got = SortRecords(records, models.SortDateAsc)
	assertIDs(t, got, "s2", "s3", "s1", "s4")
}

func TestSortRecords_CompanyModes(t *testing.T) {
	records := sortFixtures()

	// Case-insensitive; empty company sorts first ascending.
	got := SortRecords(records, models.SortCompanyAsc)
	assertIDs(t, got, "s4", "s2", "s3", "s1")

	got = SortRecords(records, models.SortCompanyDesc)
	assertIDs(t, got, "s1", "s3", "s2", "s4")
}

func TestSortRecords_StatusMode(t *testing.T) {
	got := SortRecords(sortFixtures(), models.SortStatus)
	assertIDs(t, got, "s3", "s4", "s1", "s2")
}

func TestSortRecords_UnknownStatusSinksToEnd(t *testing.T) {
	records := append(sortFixtures(), models.Application{ID: "s5", Status: models.Status("Ghosted")})

	got := SortRecords(records, models.SortStatus)
	if got[len(got)-1].ID != "s5" {
		t.Errorf("unknown status placed at %v, want last", ids(got))
	}
}

func TestSortRecords_IsPermutation(t *testing.T) {
	records := sortFixtures()
	want := ids(records)
	sort.Strings(want)

	modes := []models.SortMode{
		models.SortDateDesc, models.SortDateAsc,
		models.SortCompanyAsc, models.SortCompanyDesc,
		models.SortStatus,
	}
	for _, mode := range modes {
		got := ids(SortRecords(records, mode))
		sort.Strings(got)
		if len(got) != len(want) {
			t.Fatalf("mode %s: got %d records, want %d", mode, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("mode %s: id multiset changed: %v", mode, got)
				break
			}
		}
	}
}

func TestSortRecords_DoesNotMutateInput(t *testing.T) {
	records := sortFixtures()
	before := ids(records)

	SortRecords(records, models.SortCompanyAsc)

	after := ids(records)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("SortRecords mutated its input")
		}
	}
}

func TestSortRecords_UnknownModeFallsBackToDateDesc(t *testing.T) {
	got := SortRecords(sortFixtures(), models.SortMode("bogus"))
	assertIDs(t, got, "s4", "s1", "s3", "s2")
}
