// Package session owns per-user view state: filter criteria, the current
// page, and the selection set. Each session serializes its own mutations so a
// composite update (say, flip-to-sold plus selection eviction) is one atomic
// step that no concurrent read can observe half-done.
package session

import (
	"slices"
	"sync"

	"domainstore/internal/catalog/models"
	"domainstore/internal/selection"
)

// DefaultPageSize matches the storefront default.
const DefaultPageSize = 25

// PageSizes are the page sizes the pagination bar offers.
var PageSizes = []int{10, 25, 50, 100}

// State is one session's mutable view state.
type State struct {
	Criteria  models.Criteria
	Page      int
	PageSize  int
	Selection *selection.Set
}

// Session guards a State with its own mutex.
type Session struct {
	mu    sync.Mutex
	state State
}

func newSession() *Session {
	return &Session{
		state: State{
			Criteria:  models.DefaultCriteria(),
			Page:      1,
			PageSize:  DefaultPageSize,
			Selection: selection.NewSet(),
		},
	}
}

// Do runs fn with exclusive access to the session state. Everything fn does
// is one atomic step from the point of view of other requests.
func (s *Session) Do(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Snapshot returns a copy of the view state plus the selected identifiers.
func (s *Session) Snapshot() (models.Criteria, int, int, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Criteria, s.state.Page, s.state.PageSize, s.state.Selection.IDs()
}

// SetCriteria replaces the filter criteria wholesale. Any criteria change
// resets the page to 1, except a pure sort-key change, which keeps the page
// to preserve scroll continuity when only re-ordering.
func (s *Session) SetCriteria(c models.Criteria) {
	c.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !onlySortChanged(s.state.Criteria, c) {
		s.state.Page = 1
	}
	s.state.Criteria = c
}

// ClearFilters resets the criteria to defaults, keeping the name text, and
// returns to page 1.
func (s *Session) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Criteria = s.state.Criteria.Cleared()
	s.state.Page = 1
}

// SetPage moves to the requested page. Out-of-range values are the slicer's
// problem; the session only refuses nonsense below 1.
func (s *Session) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Page = page
}

// SetPageSize switches the page size (unknown sizes fall back to the default)
// and resets to page 1.
func (s *Session) SetPageSize(size int) {
	if !slices.Contains(PageSizes, size) {
		size = DefaultPageSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if size != s.state.PageSize {
		s.state.PageSize = size
		s.state.Page = 1
	}
}

func onlySortChanged(prev, next models.Criteria) bool {
	prev.Sort = next.Sort
	return equalCriteria(prev, next)
}

func equalCriteria(a, b models.Criteria) bool {
	return a.Name == b.Name &&
		slices.Equal(a.Countries, b.Countries) &&
		slices.Equal(a.Categories, b.Categories) &&
		slices.Equal(a.Types, b.Types) &&
		a.PostedOn == b.PostedOn &&
		a.Status == b.Status &&
		a.DA == b.DA && a.PA == b.PA && a.SS == b.SS && a.Price == b.Price &&
		a.Sort == b.Sort
}

// Manager hands out sessions keyed by requester identifier, creating them
// lazily on first use. Sessions are never persisted; they live for the
// process lifetime only.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for the given requester, creating it if needed.
func (m *Manager) Get(customerID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[customerID]
	if !ok {
		sess = newSession()
		m.sessions[customerID] = sess
	}
	return sess
}
