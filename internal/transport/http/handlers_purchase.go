package httptransport

import (
	"encoding/json"
	"net/http"

	dErrors "domainstore/pkg/domain-errors"
	"domainstore/pkg/requestcontext"
)

// handleBeginPurchase starts the reconciliation protocol. The body may name
// explicit domain ids (single-card "request to buy"); an empty body means the
// whole current selection.
func (h *Handler) handleBeginPurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid purchase request"))
			return
		}
	}

	ctx := r.Context()
	sess := h.sessionFor(r)
	candidates := h.catalog.SelectedDomains(ctx, sess)
	if len(req.IDs) > 0 {
		candidates = h.catalog.DomainsByIDs(ctx, req.IDs)
	}

	outcome, err := h.purchases.Begin(ctx, requestcontext.User(ctx), sess, candidates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handleConfirmPurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	outcome, err := h.purchases.Confirm(ctx, requestcontext.User(ctx), h.sessionFor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handleAbortPurchase(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.purchases.Abort(requestcontext.User(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}
