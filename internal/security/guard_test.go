package security

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateID_Accepts(t *testing.T) {
	valid := []string{
		"abc-123_X",
		"a",
		"0f8fad5b-d9cb-469f-a165-70867728950e",
		strings.Repeat("a", MaxIDLength),
	}
	for _, id := range valid {
		if err := ValidateID(id); err != nil {
			t.Errorf("ValidateID(%q) = %v, want nil", id, err)
		}
	}
}

func TestValidateID_Rejects(t *testing.T) {
	invalid := []string{
		"",
		"../etc",
		"a/b",
		"id with spaces",
		"semi;colon",
		strings.Repeat("a", 1000),
		strings.Repeat("a", MaxIDLength+1),
	}
	for _, id := range invalid {
		err := ValidateID(id)
		if err == nil {
			t.Errorf("ValidateID(%q) = nil, want error", id)
			continue
		}
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("ValidateID(%q) = %v, want ErrInvalidIdentifier", id, err)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"trims whitespace", "  Acme Corp  ", 100, "Acme Corp"},
		{"strips control characters", "Acme\x00\x1bCorp\n", 100, "AcmeCorp"},
		{"truncates to max length", "abcdefghij", 4, "abcd"},
		{"keeps unicode", "Zürich GmbH", 100, "Zürich GmbH"},
		{"empty input", "", 10, ""},
		{"only control characters", "\x00\x01\x02", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("SanitizeText(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestSanitizeText_NeverPanicsOnRuneBoundaries(t *testing.T) {
	// Truncation must count runes, not bytes.
	got := SanitizeText("日本語テスト", 3)
	if got != "日本語" {
		t.Errorf("SanitizeText rune truncation = %q, want %q", got, "日本語")
	}
}

func TestRecordPath(t *testing.T) {
	path, err := RecordPath(CollectionApplications, "abc-123")
	if err != nil {
		t.Fatalf("RecordPath valid input: %v", err)
	}
	if path != "applications/abc-123" {
		t.Errorf("RecordPath = %q, want %q", path, "applications/abc-123")
	}

	if _, err := RecordPath("secrets", "abc"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("RecordPath unknown collection = %v, want ErrInvalidPath", err)
	}

	if _, err := RecordPath(CollectionApplications, "../etc"); !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("RecordPath traversal id = %v, want ErrInvalidIdentifier", err)
	}
}

func TestCollectionPath(t *testing.T) {
	for _, c := range []string{CollectionApplications, CollectionTags, CollectionSettings} {
		if _, err := CollectionPath(c); err != nil {
			t.Errorf("CollectionPath(%q) = %v, want nil", c, err)
		}
	}
	if _, err := CollectionPath("applications/../secrets"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("CollectionPath traversal = %v, want ErrInvalidPath", err)
	}
}
