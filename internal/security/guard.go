// Package security validates identifiers, sanitizes user-supplied text and
// constructs store paths. It sits in front of every mutating or
// identifier-addressed store operation so malformed input never reaches the
// store layer.
package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidIdentifier is returned for identifiers that fail the
	// alphanumeric/hyphen/underscore pattern or the length bound.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidPath is returned for store paths outside the collection
	// allow-list.
	ErrInvalidPath = errors.New("invalid store path")
)

// MaxIDLength bounds identifier length. Store-assigned IDs are UUIDs (36
// chars); 64 leaves headroom for imported data.
const MaxIDLength = 64

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Collections the store exposes. Anything else is rejected as an invalid
// path before a store call is attempted.
const (
	CollectionApplications = "applications"
	CollectionTags         = "tags"
	CollectionSettings     = "settings"
)

var allowedCollections = map[string]bool{
	CollectionApplications: true,
	CollectionTags:         true,
	CollectionSettings:     true,
}

// ValidateID checks that id is a well-formed record identifier.
func ValidateID(id string) error {
	if id == "" || len(id) > MaxIDLength {
		return fmt.Errorf("%w: length must be 1-%d characters", ErrInvalidIdentifier, MaxIDLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: only letters, digits, hyphen and underscore are allowed", ErrInvalidIdentifier)
	}
	return nil
}

// SanitizeText trims surrounding whitespace, strips control characters and
// truncates the input to maxLen runes. It never fails; hostile input comes
// back as a safe (possibly empty) string.
func SanitizeText(input string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}

	out := strings.TrimSpace(b.String())
	if maxLen > 0 {
		runes := []rune(out)
		if len(runes) > maxLen {
			out = strings.TrimSpace(string(runes[:maxLen]))
		}
	}
	return out
}

// CollectionPath returns the store path for a whole collection.
func CollectionPath(collection string) (string, error) {
	if !allowedCollections[collection] {
		return "", fmt.Errorf("%w: unknown collection %q", ErrInvalidPath, collection)
	}
	return collection, nil
}

// RecordPath returns the store path for one record inside a collection. The
// sub-identifier is validated with the same rules as ValidateID.
func RecordPath(collection, id string) (string, error) {
	base, err := CollectionPath(collection)
	if err != nil {
		return "", err
	}
	if err := ValidateID(id); err != nil {
		return "", err
	}
	return base + "/" + id, nil
}
