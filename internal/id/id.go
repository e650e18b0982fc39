package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// samplePrefix marks identifiers of generated demo records.
const samplePrefix = "sample-"

// New returns a fresh random identifier for an expense.
func New() string {
	return uuid.NewString()
}

// Sample returns the identifier of the n-th demo record, e.g. "sample-3".
func Sample(n int) string {
	return fmt.Sprintf("%s%d", samplePrefix, n)
}

// IsSample reports whether id was produced by Sample.
func IsSample(id string) bool {
	return strings.HasPrefix(id, samplePrefix)
}

// Short returns the first 8 characters of id for table output.
// Sample identifiers are returned whole.
func Short(id string) string {
	if IsSample(id) || len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Resolve finds the single identifier in ids that equals ref or starts with
// it, so users can type the short form shown by list output.
func Resolve(ids []string, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty id")
	}
	var matches []string
	for _, candidate := range ids {
		if candidate == ref {
			return candidate, nil
		}
		if strings.HasPrefix(candidate, ref) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return ref, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", ref, len(matches))
	}
}
