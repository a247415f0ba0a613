// Package slug derives normalized, URL-safe identifiers from free text
// and allocates globally unique ones by probing a suffix counter
// against the storage layer.
package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxAttempts bounds the suffix probe. Exhausting it means dozens of
// articles share the same base slug and something is wrong upstream.
const MaxAttempts = 50

var (
	// ErrEmpty is returned when the input normalizes to an empty
	// string. Callers reject such input as invalid before allocation.
	ErrEmpty = errors.New("slug: text normalizes to empty")
	// ErrExhausted is returned when no free candidate was found within
	// MaxAttempts probes.
	ErrExhausted = errors.New("slug: allocation attempts exhausted")
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidChars  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// ExistsFunc reports whether a candidate slug is already taken by an
// article other than excludeID. It must reflect a consistent storage
// snapshot at call time.
type ExistsFunc func(ctx context.Context, candidate, excludeID string) (bool, error)

// Normalize turns free text into a URL-safe token:
// lowercase, "&" becomes "and", whitespace runs become single hyphens,
// anything outside [a-z0-9-] is stripped, hyphen runs are collapsed
// and leading/trailing hyphens trimmed.
//
// The result may be empty (e.g. all-punctuation input); callers decide
// whether that is an error.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "&", "and")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = invalidChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Allocate computes the unique slug for text. The base candidate is
// tried first, then "-1", "-2", ... until exists reports a free one.
//
// excludeID names the article being edited so that re-saving an
// unchanged title keeps its slug; it is empty for new articles.
// Uniqueness is ultimately enforced by the storage layer's unique
// constraint — a concurrent writer can still win the race between the
// probe and the commit, in which case the caller re-runs Allocate
// against the updated existence set.
func Allocate(ctx context.Context, text string, exists ExistsFunc, excludeID string) (string, error) {
	base := Normalize(text)
	if base == "" {
		return "", ErrEmpty
	}

	candidate := base
	for i := 1; i <= MaxAttempts; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("probe slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return "", ErrExhausted
}
