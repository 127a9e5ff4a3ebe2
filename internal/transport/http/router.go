// Package httptransport is the thin HTTP layer. Handlers decode, delegate to
// domain services, and encode; business logic stays out of this package.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	catalogservice "domainstore/internal/catalog/service"
	"domainstore/internal/comment"
	"domainstore/internal/platform/middleware"
	"domainstore/internal/purchase"
	"domainstore/internal/session"
	ticketservice "domainstore/internal/ticket/service"
)

// Handler wires HTTP endpoints to the storefront services.
type Handler struct {
	catalog   *catalogservice.Service
	tickets   *ticketservice.Service
	purchases *purchase.Service
	comments  *comment.Service
	sessions  *session.Manager
	logger    *slog.Logger
}

// NewHandler constructs the transport handler.
func NewHandler(
	catalog *catalogservice.Service,
	tickets *ticketservice.Service,
	purchases *purchase.Service,
	comments *comment.Service,
	sessions *session.Manager,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		tickets:   tickets,
		purchases: purchases,
		comments:  comments,
		sessions:  sessions,
		logger:    logger,
	}
}

// NewRouter wires all endpoints. Identity is required on every storefront
// route; health and metrics stay open for infrastructure probes.
func NewRouter(h *Handler, botToken string, skipInitDataCheck bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.Logger(h.logger))

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireIdentity(botToken, skipInitDataCheck, h.logger))

		r.Get("/catalog", h.handleGetCatalog)
		r.Post("/catalog/refresh", h.handleRefreshCatalog)
		r.Put("/catalog/filters", h.handlePutFilters)
		r.Post("/catalog/filters/clear", h.handleClearFilters)
		r.Put("/catalog/page", h.handlePutPage)
		r.Get("/catalog/export", h.handleExportCSV)

		r.Get("/selection", h.handleGetSelection)
		r.Post("/selection/toggle", h.handleToggleSelection)
		r.Post("/selection/page", h.handleSelectPage)
		r.Post("/selection/all", h.handleSelectAll)
		r.Delete("/selection", h.handleClearSelection)

		r.Post("/purchase", h.handleBeginPurchase)
		r.Post("/purchase/confirm", h.handleConfirmPurchase)
		r.Post("/purchase/abort", h.handleAbortPurchase)

		r.Get("/tickets/statuses", h.handleTicketStatuses)
		r.Post("/comments", h.handleCreateComment)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
