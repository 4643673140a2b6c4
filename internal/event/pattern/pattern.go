// Package pattern matches dot-separated event names against wildcard
// patterns.
//
// Event names are free-form strings to the dispatcher, but by convention
// they are namespaced with dots ("order.created", "user.profile.updated").
// Patterns follow the same shape and may use two wildcards:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	order.*      matches order.created, order.shipped (not order.item.added)
//	order.**     matches order, order.created, order.item.added
//	*.created    matches order.created, user.created
//	**           matches everything
package pattern

import (
	"errors"
	"strings"
)

const (
	// Separator splits names into segments.
	Separator = "."

	// Single matches exactly one segment.
	Single = "*"

	// Multi matches zero or more segments.
	Multi = "**"
)

// ErrInvalidPattern is returned for empty patterns or patterns with empty
// segments.
var ErrInvalidPattern = errors.New("invalid event pattern")

// Validate reports whether p is a usable pattern.
func Validate(p string) error {
	if p == "" {
		return ErrInvalidPattern
	}
	for seg := range strings.SplitSeq(p, Separator) {
		if seg == "" {
			return ErrInvalidPattern
		}
	}
	return nil
}

// HasWildcard reports whether p contains a wildcard segment.
func HasWildcard(p string) bool {
	for seg := range strings.SplitSeq(p, Separator) {
		if seg == Single || seg == Multi {
			return true
		}
	}
	return false
}

// Match reports whether name matches p. A pattern without wildcards
// matches only the identical name.
func Match(p, name string) bool {
	if !HasWildcard(p) {
		return p == name
	}
	return matchSegments(strings.Split(p, Separator), strings.Split(name, Separator))
}

func matchSegments(pat, name []string) bool {
	for len(pat) > 0 {
		if pat[0] == Multi {
			for skip := 0; skip <= len(name); skip++ {
				if matchSegments(pat[1:], name[skip:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if pat[0] != Single && pat[0] != name[0] {
			return false
		}
		pat, name = pat[1:], name[1:]
	}
	return len(name) == 0
}

// Filter returns the names matching p, preserving their order.
func Filter(p string, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if Match(p, name) {
			out = append(out, name)
		}
	}
	return out
}
