// Package service orchestrates ticket submission and the per-domain status
// projection that gates repeat requests.
package service

import (
	"context"
	"log/slog"
	"time"

	catalogmodels "domainstore/internal/catalog/models"
	"domainstore/internal/identity"
	"domainstore/internal/platform/metrics"
	"domainstore/internal/session"
	"domainstore/internal/ticket/models"
	dErrors "domainstore/pkg/domain-errors"
	"domainstore/pkg/requestcontext"
)

// Client is the slice of the upstream API the ticket service needs.
type Client interface {
	TicketsByCustomerAndDomains(ctx context.Context, customerID string, names []string) ([]models.Record, error)
	CreateTicket(ctx context.Context, req models.CreateRequest) error
}

// CatalogReader supplies the domain names the status fetch asks about.
type CatalogReader interface {
	List(ctx context.Context) []*catalogmodels.DomainRecord
}

// StatusStore holds the rebuilt projection.
type StatusStore interface {
	Replace(ctx context.Context, statuses models.StatusMap)
	Get(ctx context.Context) models.StatusMap
}

// Service submits tickets and maintains the status projection.
type Service struct {
	client  Client
	catalog CatalogReader
	store   StatusStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New constructs the ticket service.
func New(client Client, catalog CatalogReader, store StatusStore, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{client: client, catalog: catalog, store: store, metrics: m, logger: logger}
}

// Aggregate reduces ticket history to a per-domain latest status: a strictly
// later request time wins; ties keep the first-seen value, deterministic
// because records are scanned in slice order.
func Aggregate(records []models.Record) models.StatusMap {
	statuses := models.StatusMap{}
	seenAt := make(map[string]time.Time, len(records))
	for _, rec := range records {
		for _, name := range rec.MatchingDomains {
			if prev, ok := seenAt[name]; ok && !rec.RequestTime.After(prev) {
				continue
			}
			statuses[name] = rec.Status
			seenAt[name] = rec.RequestTime
		}
	}
	return statuses
}

// Statuses returns the current projection.
func (s *Service) Statuses(ctx context.Context) models.StatusMap {
	return s.store.Get(ctx)
}

// RefreshStatuses rebuilds the projection wholesale from ticket history.
// Preconditions: a usable identity and a non-empty catalog; otherwise the
// prior projection is kept unchanged. Fetch failures are non-fatal; badges
// simply stay stale until the next successful refresh.
func (s *Service) RefreshStatuses(ctx context.Context, user *identity.User) {
	if !user.Usable() {
		return
	}
	domains := s.catalog.List(ctx)
	if len(domains) == 0 {
		return
	}
	names := make([]string, 0, len(domains))
	for _, d := range domains {
		names = append(names, d.Name)
	}

	records, err := s.client.TicketsByCustomerAndDomains(ctx, user.CustomerID(), names)
	if err != nil {
		s.logger.WarnContext(ctx, "ticket status aggregation failed",
			"request_id", requestcontext.RequestID(ctx),
			"customer_id", user.CustomerID(),
			"error", err,
		)
		return
	}
	s.store.Replace(ctx, Aggregate(records))
}

// Submit sends the purchase request for the given domains. The total is the
// summed display price, not the base price. On success it clears the whole
// selection (not just the submitted subset) and kicks off an asynchronous
// status refresh so the new request shows as pending immediately. On failure
// the error propagates and the selection is left intact for retry; the flow
// holds no state between calls beyond its arguments, so retrying is safe.
func (s *Service) Submit(ctx context.Context, user *identity.User, sess *session.Session, domains []*catalogmodels.DomainRecord) error {
	if !user.Usable() {
		return dErrors.New(dErrors.CodeIdentityUnavailable, "user information not available")
	}
	if len(domains) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "no domains to request")
	}

	names := make([]string, 0, len(domains))
	var total float64
	for _, d := range domains {
		names = append(names, d.Name)
		total += d.DisplayPrice
	}

	req := models.CreateRequest{
		CustomerID:     user.CustomerID(),
		RequestDomains: names,
		Price:          total,
		Status:         models.StatusNew,
	}
	if err := s.client.CreateTicket(ctx, req); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to send purchase request")
	}

	s.metrics.IncTicketsSubmitted()
	sess.Do(func(st *session.State) {
		st.Selection.Clear()
	})

	refreshCtx := context.WithoutCancel(ctx)
	go s.RefreshStatuses(refreshCtx, user)

	return nil
}
