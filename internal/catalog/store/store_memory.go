// Package store holds the in-memory catalog snapshot. There is deliberately
// no persistent implementation: catalog state lives only for the lifetime of
// the process and is rebuilt from the upstream service on every refresh.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"domainstore/internal/catalog/models"
	"domainstore/pkg/platform/sentinel"
)

// InMemoryCatalogStore keeps the authoritative domain snapshot behind an
// RWMutex. Writes replace the snapshot wholesale (or flip records to sold via
// copy-on-write), so a reader never observes a partially updated catalog.
type InMemoryCatalogStore struct {
	mu      sync.RWMutex
	domains []*models.DomainRecord
	byID    map[string]*models.DomainRecord
	byName  map[string]*models.DomainRecord

	applied uint64 // epoch of the live snapshot
	issued  uint64 // last epoch handed out to a fetch
}

// NewInMemoryCatalogStore creates an empty catalog store.
func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		byID:   make(map[string]*models.DomainRecord),
		byName: make(map[string]*models.DomainRecord),
	}
}

// NextEpoch reserves a monotonically increasing epoch for a fetch about to
// start. Replace rejects epochs older than the live snapshot, so of two
// overlapping refreshes only the later-issued one can land.
func (s *InMemoryCatalogStore) NextEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Replace swaps in a freshly fetched snapshot. A stale epoch (a slow response
// arriving after a newer one already landed) is rejected with ErrStaleEpoch.
func (s *InMemoryCatalogStore) Replace(ctx context.Context, domains []*models.DomainRecord, epoch uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch <= s.applied {
		return fmt.Errorf("replace with epoch %d behind %d: %w", epoch, s.applied, sentinel.ErrStaleEpoch)
	}

	byID := make(map[string]*models.DomainRecord, len(domains))
	byName := make(map[string]*models.DomainRecord, len(domains))
	for _, d := range domains {
		byID[d.ID] = d
		byName[d.Name] = d
	}
	s.domains = slices.Clone(domains)
	s.byID = byID
	s.byName = byName
	s.applied = epoch
	return nil
}

// List returns the live snapshot. Callers must treat records as read-only;
// the store never mutates a record in place after publishing it.
func (s *InMemoryCatalogStore) List(ctx context.Context) []*models.DomainRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.domains
}

// Len reports the size of the live snapshot.
func (s *InMemoryCatalogStore) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.domains)
}

// Get looks up one record by identifier.
func (s *InMemoryCatalogStore) Get(ctx context.Context, id string) (*models.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("domain %q: %w", id, sentinel.ErrNotFound)
	}
	return d, nil
}

// FindByName looks up one record by its domain name, the ticket join key.
func (s *InMemoryCatalogStore) FindByName(ctx context.Context, name string) (*models.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("domain %q: %w", name, sentinel.ErrNotFound)
	}
	return d, nil
}

// AvailableIDs returns the identifiers of every currently purchasable domain.
func (s *InMemoryCatalogStore) AvailableIDs(ctx context.Context) map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[string]struct{})
	for _, d := range s.domains {
		if d.Status {
			ids[d.ID] = struct{}{}
		}
	}
	return ids
}

// Counts reports the status breakdown the status-filter bar displays.
func (s *InMemoryCatalogStore) Counts(ctx context.Context) (total, available, sold int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total = len(s.domains)
	for _, d := range s.domains {
		if d.Status {
			available++
		}
	}
	return total, available, total - available
}

// MarkSold flips the named domains to sold and returns the identifiers it
// actually flipped. Records are replaced, not mutated, so readers holding an
// older snapshot keep a consistent view. Unknown names are ignored; the
// reconciliation layer decides what absence means.
func (s *InMemoryCatalogStore) MarkSold(ctx context.Context, names []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	flipped := make([]string, 0, len(names))
	for _, name := range names {
		old, ok := s.byName[name]
		if !ok || !old.Status {
			continue
		}
		next := *old
		next.Status = false
		s.byName[name] = &next
		s.byID[next.ID] = &next
		if i := slices.Index(s.domains, old); i >= 0 {
			s.domains = slices.Clone(s.domains)
			s.domains[i] = &next
		}
		flipped = append(flipped, next.ID)
	}
	return flipped
}
