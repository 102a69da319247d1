// Package nsapi holds the decoded shapes of the NationStates API documents
// (region, nation, world/dispatch and the regional data dump) together with the
// name normalization rule every comparison in goldeneye goes through.
package nsapi

import "strings"

// Normalize converts a display name to its identity form: lowercase with
// spaces replaced by underscores. Normalize is idempotent.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// NameSet is a set of normalized names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names, normalizing each and skipping blanks.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	s.Add(names...)
	return s
}

// Add inserts names into the set.
func (s NameSet) Add(names ...string) {
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		s[Normalize(n)] = struct{}{}
	}
}

// Has reports whether name (in any form) is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[Normalize(name)]
	return ok
}

// Len returns the number of names in the set.
func (s NameSet) Len() int { return len(s) }
