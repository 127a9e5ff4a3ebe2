package httptransport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	catalogservice "domainstore/internal/catalog/service"
	catalogstore "domainstore/internal/catalog/store"
	"domainstore/internal/comment"
	"domainstore/internal/identity"
	"domainstore/internal/purchase"
	"domainstore/internal/session"
	ticketmodels "domainstore/internal/ticket/models"
	ticketservice "domainstore/internal/ticket/service"
	ticketstore "domainstore/internal/ticket/store"
	"domainstore/internal/upstream"
	"domainstore/pkg/testutil"
)

// fakeBackend fakes the upstream catalog/ticket/comment service.
type fakeBackend struct {
	mu      sync.Mutex
	domains string
	tickets []ticketmodels.CreateRequest
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /domains/public", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		_, _ = w.Write([]byte(`{"data":` + b.domains + `}`))
	})
	mux.HandleFunc("POST /tickets", func(w http.ResponseWriter, r *http.Request) {
		var req ticketmodels.CreateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		b.tickets = append(b.tickets, req)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("POST /tickets/customer-domains", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	mux.HandleFunc("POST /comments", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func (b *fakeBackend) createdTickets() []ticketmodels.CreateRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ticketmodels.CreateRequest(nil), b.tickets...)
}

type RouterSuite struct {
	suite.Suite
	backend  *fakeBackend
	router   http.Handler
	user     *identity.User
	initData string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.backend = &fakeBackend{
		domains: `[
			{"id":"1","domainName":"alpha.com","country":"US","price":100,"status":true,"postDateTime":"2025-01-01T00:00:00Z"},
			{"id":"2","domainName":"beta.com","country":"DE","price":1,"status":true,"postDateTime":"2025-01-03T00:00:00Z"},
			{"id":"3","domainName":"gamma.com","country":"US","price":500,"status":false,"postDateTime":"2025-01-02T00:00:00Z"}
		]`,
	}
	srv := httptest.NewServer(s.backend.handler())
	s.T().Cleanup(srv.Close)

	log := testutil.DiscardLogger()
	client := upstream.New(srv.URL, 5*time.Second, log)

	store := catalogstore.NewInMemoryCatalogStore()
	catalogSvc := catalogservice.New(client, store, upstream.ScopePublic, nil, log)
	s.Require().NoError(catalogSvc.Refresh(s.T().Context()))

	ticketSvc := ticketservice.New(client, store, ticketstore.NewInMemoryStatusStore(), nil, log)
	purchaseSvc := purchase.New(client, upstream.ScopePublic, store, ticketSvc, true, nil, log)
	commentSvc := comment.New(client, log)

	h := NewHandler(catalogSvc, ticketSvc, purchaseSvc, commentSvc, session.NewManager(), log)
	s.router = NewRouter(h, "", true)

	s.user = &identity.User{ID: "42", Username: "alice"}
	s.initData = testutil.InitData(s.T(), s.user)
}

func (s *RouterSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	req.Header.Set(testutil.InitDataHeader, s.initData)
	return testutil.DoRequest(s.router, req)
}

func (s *RouterSuite) TestIdentityGate() {
	s.Run("missing init data is rejected", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/catalog")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "identity_unavailable")
	})

	s.Run("health and metrics stay open", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})
}

func (s *RouterSuite) TestCatalogFlow() {
	s.Run("get catalog returns the default view", func() {
		rr := s.do(http.MethodGet, "/catalog", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[catalogResponse](s.T(), rr)
		s.Len(resp.Items, 3)
		s.Equal("beta.com", resp.Items[0].Name, "newest first by default")
		s.Equal(2, resp.Available)
		s.Equal(1, resp.Sold)
	})

	s.Run("filters narrow the view and reset the page", func() {
		criteria := map[string]any{
			"status": "available",
			"da":     map[string]float64{"min": 0, "max": 100},
			"pa":     map[string]float64{"min": 0, "max": 100},
			"ss":     map[string]float64{"min": 0, "max": 100},
			"price":  map[string]float64{"min": 0, "max": 10000},
			"sort":   "price_low",
		}
		rr := s.do(http.MethodPut, "/catalog/filters", criteria)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[catalogResponse](s.T(), rr)
		s.Equal(2, resp.FilteredTotal)
		s.Equal(1, resp.Page)
		s.Equal("beta.com", resp.Items[0].Name, "display price 10 sorts below 100")
	})

	s.Run("clear filters restores the full view", func() {
		rr := s.do(http.MethodPost, "/catalog/filters/clear", nil)
		resp := testutil.UnmarshalResponse[catalogResponse](s.T(), rr)
		s.Equal(3, resp.FilteredTotal)
	})

	s.Run("page size switch", func() {
		rr := s.do(http.MethodPut, "/catalog/page", pageRequest{PageSize: 10})
		resp := testutil.UnmarshalResponse[catalogResponse](s.T(), rr)
		s.Equal(10, resp.PageSize)
		s.Equal(1, resp.Page)
	})

	s.Run("csv export streams the filtered set", func() {
		rr := s.do(http.MethodGet, "/catalog/export", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Contains(rr.Header().Get("Content-Type"), "text/csv")
		s.Contains(rr.Body.String(), "Domain Name,Country,Category")
		s.Contains(rr.Body.String(), "alpha.com")
	})

	s.Run("refresh re-fetches the catalog", func() {
		s.backend.mu.Lock()
		s.backend.domains = `[{"id":"9","domainName":"delta.io","status":true}]`
		s.backend.mu.Unlock()

		rr := s.do(http.MethodPost, "/catalog/refresh", nil)
		resp := testutil.UnmarshalResponse[catalogResponse](s.T(), rr)
		s.Equal(1, resp.CatalogTotal)
	})
}

func (s *RouterSuite) TestSelectionFlow() {
	s.Run("toggle and read back", func() {
		rr := s.do(http.MethodPost, "/selection/toggle", map[string]string{"id": "1"})
		resp := testutil.UnmarshalResponse[selectionResponse](s.T(), rr)
		s.Equal([]string{"1"}, resp.SelectedIDs)

		rr = s.do(http.MethodGet, "/selection", nil)
		resp = testutil.UnmarshalResponse[selectionResponse](s.T(), rr)
		s.Equal(1, resp.Count)
	})

	s.Run("toggling a sold domain is a silent no-op", func() {
		rr := s.do(http.MethodPost, "/selection/toggle", map[string]string{"id": "3"})
		resp := testutil.UnmarshalResponse[selectionResponse](s.T(), rr)
		s.Equal([]string{"1"}, resp.SelectedIDs)
	})

	s.Run("toggle without an id is rejected", func() {
		rr := s.do(http.MethodPost, "/selection/toggle", map[string]string{})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("select all then clear", func() {
		rr := s.do(http.MethodPost, "/selection/all", map[string]bool{"on": true})
		resp := testutil.UnmarshalResponse[selectionResponse](s.T(), rr)
		s.Equal([]string{"1", "2"}, resp.SelectedIDs, "sold domains never enter the selection")

		rr = s.do(http.MethodDelete, "/selection", nil)
		resp = testutil.UnmarshalResponse[selectionResponse](s.T(), rr)
		s.Zero(resp.Count)
	})
}

func (s *RouterSuite) TestPurchaseFlow() {
	s.Run("selection purchase submits a ticket", func() {
		s.do(http.MethodPost, "/selection/toggle", map[string]string{"id": "1"})
		s.do(http.MethodPost, "/selection/toggle", map[string]string{"id": "2"})

		rr := s.do(http.MethodPost, "/purchase", nil)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		outcome := testutil.UnmarshalResponse[purchase.Outcome](s.T(), rr)
		s.Equal(purchase.StateDone, outcome.State)
		s.Equal([]string{"alpha.com", "beta.com"}, outcome.Submitted)
		s.Equal(110.0, outcome.Total, "beta.com's base price 1 displays and sums as 10")

		tickets := s.backend.createdTickets()
		s.Require().Len(tickets, 1)
		s.Equal("alice", tickets[0].CustomerID)
		s.Equal(110.0, tickets[0].Price)

		// The selection cleared with the submission.
		resp := testutil.UnmarshalResponse[selectionResponse](s.T(), s.do(http.MethodGet, "/selection", nil))
		s.Zero(resp.Count)
	})

	s.Run("explicit ids bypass the selection", func() {
		rr := s.do(http.MethodPost, "/purchase", map[string][]string{"ids": {"1"}})
		outcome := testutil.UnmarshalResponse[purchase.Outcome](s.T(), rr)
		s.Equal([]string{"alpha.com"}, outcome.Submitted)
	})

	s.Run("empty selection is rejected", func() {
		rr := s.do(http.MethodPost, "/purchase", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("confirm without a pending draft", func() {
		rr := s.do(http.MethodPost, "/purchase/confirm", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *RouterSuite) TestTicketStatuses() {
	rr := s.do(http.MethodGet, "/tickets/statuses", nil)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	resp := testutil.UnmarshalResponse[ticketStatusResponse](s.T(), rr)
	s.NotNil(resp.Statuses)
	s.Empty(resp.Pending, "no ticket history in the fake backend")
}

func (s *RouterSuite) TestComments() {
	s.Run("submits feedback", func() {
		rr := s.do(http.MethodPost, "/comments", map[string]string{"content": "love it"})
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	})

	s.Run("blank content is rejected", func() {
		rr := s.do(http.MethodPost, "/comments", map[string]string{"content": "  "})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}
