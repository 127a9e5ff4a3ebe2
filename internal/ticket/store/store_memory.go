// Package store holds the in-memory ticket status projection.
package store

import (
	"context"
	"maps"
	"sync"

	"domainstore/internal/ticket/models"
)

// InMemoryStatusStore keeps the per-domain latest-status projection. The map
// is only ever replaced wholesale, never patched in place, so a failed or
// skipped aggregation leaves the prior projection fully intact.
type InMemoryStatusStore struct {
	mu       sync.RWMutex
	statuses models.StatusMap
}

// NewInMemoryStatusStore creates an empty projection store.
func NewInMemoryStatusStore() *InMemoryStatusStore {
	return &InMemoryStatusStore{statuses: models.StatusMap{}}
}

// Replace swaps in a freshly built projection.
func (s *InMemoryStatusStore) Replace(ctx context.Context, statuses models.StatusMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = statuses
}

// Get returns a copy of the current projection.
func (s *InMemoryStatusStore) Get(ctx context.Context) models.StatusMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.statuses)
}
