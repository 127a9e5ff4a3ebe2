package httptransport

import (
	"encoding/json"
	"net/http"

	dErrors "domainstore/pkg/domain-errors"
)

type selectionResponse struct {
	SelectedIDs []string `json:"selected_ids"`
	Count       int      `json:"count"`
}

func (h *Handler) writeSelection(w http.ResponseWriter, r *http.Request) {
	_, _, _, selected := h.sessionFor(r).Snapshot()
	writeJSON(w, http.StatusOK, selectionResponse{SelectedIDs: selected, Count: len(selected)})
}

func (h *Handler) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	h.writeSelection(w, r)
}

func (h *Handler) handleToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "domain id is required"))
		return
	}
	h.catalog.ToggleSelection(r.Context(), h.sessionFor(r), req.ID)
	h.writeSelection(w, r)
}

func (h *Handler) handleSelectPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		On bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid selection request"))
		return
	}
	h.catalog.SelectPage(r.Context(), h.sessionFor(r), req.On)
	h.writeSelection(w, r)
}

func (h *Handler) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		On bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid selection request"))
		return
	}
	h.catalog.SelectAll(r.Context(), h.sessionFor(r), req.On)
	h.writeSelection(w, r)
}

func (h *Handler) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	h.catalog.ClearSelection(h.sessionFor(r))
	h.writeSelection(w, r)
}
