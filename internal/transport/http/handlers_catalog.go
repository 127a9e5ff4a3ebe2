package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"domainstore/internal/catalog/models"
	catalogservice "domainstore/internal/catalog/service"
	"domainstore/internal/session"
	ticketmodels "domainstore/internal/ticket/models"
	dErrors "domainstore/pkg/domain-errors"
	"domainstore/pkg/requestcontext"
)

// catalogResponse is the page view plus the ticket badges the cards show.
type catalogResponse struct {
	*catalogservice.View
	TicketStatuses ticketmodels.StatusMap `json:"ticket_statuses"`
}

// sessionFor returns the requester's session. RequireIdentity guarantees a
// usable user on every route this is called from.
func (h *Handler) sessionFor(r *http.Request) *session.Session {
	return h.sessions.Get(requestcontext.User(r.Context()).CustomerID())
}

func (h *Handler) renderCatalog(ctx context.Context, w http.ResponseWriter, sess *session.Session) {
	view := h.catalog.View(ctx, sess)
	writeJSON(w, http.StatusOK, catalogResponse{
		View:           view,
		TicketStatuses: h.tickets.Statuses(ctx),
	})
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	h.renderCatalog(r.Context(), w, h.sessionFor(r))
}

// handleRefreshCatalog re-fetches the catalog. Ticket badges refresh in the
// background; their failure never blocks browsing.
func (h *Handler) handleRefreshCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.catalog.Refresh(ctx); err != nil {
		writeError(w, err)
		return
	}
	user := requestcontext.User(ctx)
	go h.tickets.RefreshStatuses(context.WithoutCancel(ctx), user)

	h.renderCatalog(ctx, w, h.sessionFor(r))
}

func (h *Handler) handlePutFilters(w http.ResponseWriter, r *http.Request) {
	var criteria models.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid filter criteria"))
		return
	}
	sess := h.sessionFor(r)
	sess.SetCriteria(criteria)
	h.renderCatalog(r.Context(), w, sess)
}

func (h *Handler) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFor(r)
	sess.ClearFilters()
	h.renderCatalog(r.Context(), w, sess)
}

type pageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (h *Handler) handlePutPage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid page request"))
		return
	}
	sess := h.sessionFor(r)
	if req.PageSize != 0 {
		sess.SetPageSize(req.PageSize)
	}
	if req.Page != 0 {
		sess.SetPage(req.Page)
	}
	h.renderCatalog(r.Context(), w, sess)
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="domains.csv"`)
	if err := h.catalog.Export(r.Context(), h.sessionFor(r), w); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
	}
}
