package purchase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"domainstore/internal/catalog/models"
	"domainstore/internal/identity"
	"domainstore/internal/platform/metrics"
	"domainstore/internal/session"
	"domainstore/internal/upstream"
	dErrors "domainstore/pkg/domain-errors"
	"domainstore/pkg/requestcontext"
)

// Fetcher re-fetches the authoritative domain list at request time. It is the
// same source the catalog refresh uses.
type Fetcher interface {
	FetchCatalog(ctx context.Context, scope upstream.Scope) ([]models.WireDomain, error)
}

// CatalogCorrector applies the flip-to-sold side effect to the live snapshot.
type CatalogCorrector interface {
	MarkSold(ctx context.Context, names []string) []string
}

// Submitter sends the reconciled request to the ticketing service.
type Submitter interface {
	Submit(ctx context.Context, user *identity.User, sess *session.Session, domains []*models.DomainRecord) error
}

// Service runs the reconciliation protocol. One draft per requester at a
// time; a new Begin supersedes an unresolved draft, mirroring the storefront
// where opening the request dialog replaces the previous one.
type Service struct {
	fetcher   Fetcher
	scope     upstream.Scope
	catalog   CatalogCorrector
	submitter Submitter
	metrics   *metrics.Metrics
	logger    *slog.Logger

	// absentMeansSold controls how a name missing from the re-fetched
	// catalog is classified. The storefront has always treated absence as
	// sold; kept configurable in case that conflation is revisited.
	absentMeansSold bool

	mu     sync.Mutex
	drafts map[string]*Draft
}

// New constructs the purchase service.
func New(fetcher Fetcher, scope upstream.Scope, catalog CatalogCorrector, submitter Submitter, absentMeansSold bool, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		fetcher:         fetcher,
		scope:           scope,
		catalog:         catalog,
		submitter:       submitter,
		absentMeansSold: absentMeansSold,
		metrics:         m,
		logger:          logger,
		drafts:          make(map[string]*Draft),
	}
}

// Begin starts a purchase attempt for the given candidate records.
//
// It fails closed without any network call when the identity is unusable or
// the candidate set is empty. Otherwise it re-fetches the catalog and
// partitions the requested names. A fetch failure degrades optimistically:
// all requested names are treated as available and the error is logged; at
// this step availability wins over consistency so a flaky backend cannot
// block the user.
//
// When the partition finds sold names, the catalog flip and the selection
// eviction happen immediately and atomically, before the user acknowledges
// anything, so no stale availability is shown afterwards. The draft then
// waits in StateAwaitingDecision. A clean partition submits straight away.
func (s *Service) Begin(ctx context.Context, user *identity.User, sess *session.Session, candidates []*models.DomainRecord) (*Outcome, error) {
	if !user.Usable() {
		return nil, dErrors.New(dErrors.CodeIdentityUnavailable, "user information not available")
	}
	if len(candidates) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no domains selected")
	}

	names := make([]string, 0, len(candidates))
	for _, rec := range candidates {
		names = append(names, rec.Name)
	}

	result := s.check(ctx, names)

	draft := &Draft{
		ID:      uuid.NewString(),
		Domains: candidates,
		Result:  result,
		State:   StateChecking,
	}

	if !result.Clean() {
		s.metrics.IncReconciliationsSold()
		// Correct the catalog and the selection in one session step: the
		// flip happens while the session lock is held, so any selection
		// snapshot taken after the flip is visible is already evicted.
		// The correction is not undone by a later abort.
		sess.Do(func(st *session.State) {
			flipped := s.catalog.MarkSold(ctx, result.Sold)
			st.Selection.Evict(flipped)
		})

		draft.State = StateAwaitingDecision
		s.putDraft(user.CustomerID(), draft)
		return &Outcome{State: StateAwaitingDecision, Result: result, DraftID: draft.ID}, nil
	}

	s.metrics.IncReconciliationsClean()
	draft.State = StateSubmitting
	return s.submit(ctx, user, sess, draft)
}

// Confirm acknowledges the partition. With still-available domains the
// protocol continues into submission; with none it aborts. The draft is
// claimed atomically, so of two racing confirms exactly one submits and the
// other sees no pending request.
func (s *Service) Confirm(ctx context.Context, user *identity.User, sess *session.Session) (*Outcome, error) {
	if !user.Usable() {
		return nil, dErrors.New(dErrors.CodeIdentityUnavailable, "user information not available")
	}
	draft := s.takeDraft(user.CustomerID())
	if draft == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no pending purchase request")
	}

	if len(draft.Result.Available) == 0 {
		return &Outcome{State: StateAborted, Result: draft.Result}, nil
	}

	draft.State = StateSubmitting
	return s.submit(ctx, user, sess, draft)
}

// Abort discards the pending draft. Catalog corrections already applied stay.
func (s *Service) Abort(user *identity.User) (*Outcome, error) {
	if !user.Usable() {
		return nil, dErrors.New(dErrors.CodeIdentityUnavailable, "user information not available")
	}
	draft := s.takeDraft(user.CustomerID())
	if draft == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no pending purchase request")
	}
	return &Outcome{State: StateAborted, Result: draft.Result}, nil
}

// check re-fetches ground truth and partitions the requested names.
func (s *Service) check(ctx context.Context, names []string) Result {
	wire, err := s.fetcher.FetchCatalog(ctx, s.scope)
	if err != nil {
		// Optimistic fallback: the re-check could not run, so proceed
		// as if everything requested is still available.
		s.logger.WarnContext(ctx, "availability check failed, proceeding optimistically",
			"request_id", requestcontext.RequestID(ctx),
			"domains", len(names),
			"error", err,
		)
		return Result{Available: names, Sold: nil}
	}

	latest := make(map[string]bool, len(wire))
	for _, rec := range models.FromWireList(wire) {
		latest[rec.Name] = rec.Status
	}

	var result Result
	for _, name := range names {
		status, found := latest[name]
		switch {
		case found && status:
			result.Available = append(result.Available, name)
		case !found && !s.absentMeansSold:
			result.Available = append(result.Available, name)
		default:
			result.Sold = append(result.Sold, name)
		}
	}
	return result
}

// submit sends the still-available subset. The caller holds the only
// reference to the draft; on failure it is put back in StateAwaitingDecision
// so the user can confirm again.
func (s *Service) submit(ctx context.Context, user *identity.User, sess *session.Session, draft *Draft) (*Outcome, error) {
	domains := draft.availableDomains()
	if err := s.submitter.Submit(ctx, user, sess, domains); err != nil {
		draft.State = StateAwaitingDecision
		s.putDraft(user.CustomerID(), draft)
		return nil, err
	}

	submitted := make([]string, 0, len(domains))
	var total float64
	for _, rec := range domains {
		submitted = append(submitted, rec.Name)
		total += rec.DisplayPrice
	}
	return &Outcome{State: StateDone, Result: draft.Result, Submitted: submitted, Total: total}, nil
}

func (s *Service) putDraft(customerID string, draft *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[customerID] = draft
}

// takeDraft removes and returns the requester's draft in one step. Claiming
// is destructive so two racing confirms cannot both walk off with it.
func (s *Service) takeDraft(customerID string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.drafts[customerID]
	delete(s.drafts, customerID)
	return draft
}
