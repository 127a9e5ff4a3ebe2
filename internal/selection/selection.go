// Package selection tracks which catalog entries a user has picked for
// purchase. The one invariant: the set only ever contains identifiers of
// currently available domains, enforced on every mutation rather than lazily
// at read time.
package selection

import (
	"slices"
)

// Availability is the view of currently purchasable domain identifiers a
// mutation validates against. The session layer reads it from the catalog
// store inside the same atomic step as the mutation.
type Availability map[string]struct{}

// Set is one session's selection. It is not internally synchronized; the
// owning session serializes access.
type Set struct {
	ids map[string]struct{}
}

// NewSet creates an empty selection.
func NewSet() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Has reports whether the identifier is selected.
func (s *Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len reports the selection size.
func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected identifiers in sorted order for deterministic output.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Toggle flips one identifier. Adding the id of a sold (or unknown) domain is
// silently dropped, not an error.
func (s *Set) Toggle(id string, available Availability) {
	if s.Has(id) {
		delete(s.ids, id)
		return
	}
	if _, ok := available[id]; ok {
		s.ids[id] = struct{}{}
	}
}

// SetMany replaces the selection with the given identifiers, keeping only the
// available ones.
func (s *Set) SetMany(ids []string, available Availability) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := available[id]; ok {
			next[id] = struct{}{}
		}
	}
	s.ids = next
}

// Clear empties the selection.
func (s *Set) Clear() {
	s.ids = make(map[string]struct{})
}

// SelectPage unions the page's available identifiers into the selection when
// on, or removes exactly the page's identifiers (available or not) when off,
// leaving other pages' selections untouched.
func (s *Set) SelectPage(pageIDs []string, on bool, available Availability) {
	if on {
		for _, id := range pageIDs {
			if _, ok := available[id]; ok {
				s.ids[id] = struct{}{}
			}
		}
		return
	}
	for _, id := range pageIDs {
		delete(s.ids, id)
	}
}

// SelectAll selects every available domain of the full filtered set when on,
// or clears the selection when off.
func (s *Set) SelectAll(filteredIDs []string, on bool, available Availability) {
	if !on {
		s.Clear()
		return
	}
	s.SetMany(filteredIDs, available)
}

// Evict removes the given identifiers. Used when reconciliation discovers
// domains sold out from under the user: eviction happens as part of that
// transition, not on the next read.
func (s *Set) Evict(ids []string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}
