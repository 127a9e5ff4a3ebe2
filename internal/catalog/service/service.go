// Package service orchestrates the catalog: refreshing the snapshot from
// upstream, computing per-session views, and mediating selection mutations so
// their availability checks stay consistent with the live snapshot.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"domainstore/internal/catalog/models"
	"domainstore/internal/catalog/query"
	"domainstore/internal/platform/metrics"
	"domainstore/internal/session"
	"domainstore/internal/upstream"
	dErrors "domainstore/pkg/domain-errors"
	"domainstore/pkg/platform/sentinel"
	"domainstore/pkg/requestcontext"
)

// Fetcher is the slice of the upstream API the catalog needs.
type Fetcher interface {
	FetchCatalog(ctx context.Context, scope upstream.Scope) ([]models.WireDomain, error)
}

// Store is the catalog snapshot the service reads and replaces.
type Store interface {
	NextEpoch() uint64
	Replace(ctx context.Context, domains []*models.DomainRecord, epoch uint64) error
	List(ctx context.Context) []*models.DomainRecord
	Counts(ctx context.Context) (total, available, sold int)
	AvailableIDs(ctx context.Context) map[string]struct{}
}

// Service computes catalog views and keeps the snapshot fresh.
type Service struct {
	fetcher Fetcher
	store   Store
	scope   upstream.Scope
	metrics *metrics.Metrics
	logger  *slog.Logger

	refreshGroup singleflight.Group
}

// New constructs the catalog service.
func New(fetcher Fetcher, store Store, scope upstream.Scope, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		scope:   scope,
		metrics: m,
		logger:  logger,
	}
}

// Refresh re-fetches the authoritative domain list and replaces the snapshot.
// Concurrent refreshes collapse into one upstream call; a slow response that
// loses the epoch race is discarded silently. On fetch failure the last-good
// snapshot stays in place and the caller gets a retryable error; the retry
// is the user's refresh action.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		epoch := s.store.NextEpoch()
		wire, err := s.fetcher.FetchCatalog(ctx, s.scope)
		if err != nil {
			s.metrics.IncCatalogRefreshErrors()
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to fetch domains")
		}

		records := models.FromWireList(wire)
		if err := s.store.Replace(ctx, records, epoch); err != nil {
			if errors.Is(err, sentinel.ErrStaleEpoch) {
				s.logger.InfoContext(ctx, "discarding stale catalog fetch",
					"request_id", requestcontext.RequestID(ctx),
					"epoch", epoch,
				)
				return nil, nil
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to replace catalog")
		}

		s.metrics.IncCatalogRefreshes()
		s.logger.InfoContext(ctx, "catalog refreshed",
			"request_id", requestcontext.RequestID(ctx),
			"domains", len(records),
			"epoch", epoch,
		)
		return nil, nil
	})
	return err
}

// View computes the session's current page: filter, stable sort, then slice.
// The snapshot is read once, so the whole pipeline sees one consistent catalog.
func (s *Service) View(ctx context.Context, sess *session.Session) *View {
	criteria, page, pageSize, selected := sess.Snapshot()
	domains := s.store.List(ctx)

	filtered := query.Filter(domains, criteria)
	ordered := query.Sort(filtered, criteria.Sort)
	items, start, end, totalPages := query.Page(ordered, page, pageSize)

	total, available, sold := s.store.Counts(ctx)
	return &View{
		Items:         items,
		Page:          page,
		PageSize:      pageSize,
		Start:         start,
		End:           end,
		FilteredTotal: len(filtered),
		TotalPages:    totalPages,
		Criteria:      criteria,
		CatalogTotal:  total,
		Available:     available,
		Sold:          sold,
		SelectedIDs:   selected,
	}
}

// filteredSorted recomputes the session's full ordered result set.
func (s *Service) filteredSorted(ctx context.Context, criteria models.Criteria) []*models.DomainRecord {
	return query.Sort(query.Filter(s.store.List(ctx), criteria), criteria.Sort)
}

// ToggleSelection flips one domain in the selection, validated against the
// live availability view.
func (s *Service) ToggleSelection(ctx context.Context, sess *session.Session, id string) {
	available := s.store.AvailableIDs(ctx)
	sess.Do(func(st *session.State) {
		st.Selection.Toggle(id, available)
	})
}

// SetSelection replaces the selection with the given identifiers, dropping
// any that are not currently available.
func (s *Service) SetSelection(ctx context.Context, sess *session.Session, ids []string) {
	available := s.store.AvailableIDs(ctx)
	sess.Do(func(st *session.State) {
		st.Selection.SetMany(ids, available)
	})
}

// SelectPage selects or unselects the session's current page.
func (s *Service) SelectPage(ctx context.Context, sess *session.Session, on bool) {
	available := s.store.AvailableIDs(ctx)
	sess.Do(func(st *session.State) {
		ordered := s.filteredSorted(ctx, st.Criteria)
		pageItems, _, _, _ := query.Page(ordered, st.Page, st.PageSize)
		ids := make([]string, 0, len(pageItems))
		for _, d := range pageItems {
			ids = append(ids, d.ID)
		}
		st.Selection.SelectPage(ids, on, available)
	})
}

// SelectAll selects every available domain across the full filtered set (not
// just the visible page), or clears the selection.
func (s *Service) SelectAll(ctx context.Context, sess *session.Session, on bool) {
	available := s.store.AvailableIDs(ctx)
	sess.Do(func(st *session.State) {
		filtered := query.Filter(s.store.List(ctx), st.Criteria)
		ids := make([]string, 0, len(filtered))
		for _, d := range filtered {
			ids = append(ids, d.ID)
		}
		st.Selection.SelectAll(ids, on, available)
	})
}

// ClearSelection empties the session's selection.
func (s *Service) ClearSelection(sess *session.Session) {
	sess.Do(func(st *session.State) {
		st.Selection.Clear()
	})
}

// DomainsByIDs resolves identifiers to records, keeping only domains present
// and available in the snapshot. Used when a purchase names explicit ids
// (single-card "request to buy") instead of the whole selection.
func (s *Service) DomainsByIDs(ctx context.Context, ids []string) []*models.DomainRecord {
	byID := make(map[string]*models.DomainRecord)
	for _, d := range s.store.List(ctx) {
		byID[d.ID] = d
	}
	out := make([]*models.DomainRecord, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok && d.Status {
			out = append(out, d)
		}
	}
	return out
}

// SelectedDomains resolves the session's selection to records, keeping only
// domains that are still present and available in the snapshot.
func (s *Service) SelectedDomains(ctx context.Context, sess *session.Session) []*models.DomainRecord {
	_, _, _, selected := sess.Snapshot()
	byID := make(map[string]*models.DomainRecord)
	for _, d := range s.store.List(ctx) {
		byID[d.ID] = d
	}
	out := make([]*models.DomainRecord, 0, len(selected))
	for _, id := range selected {
		if d, ok := byID[id]; ok && d.Status {
			out = append(out, d)
		}
	}
	return out
}
