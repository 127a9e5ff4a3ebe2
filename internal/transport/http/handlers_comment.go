package httptransport

import (
	"encoding/json"
	"net/http"

	dErrors "domainstore/pkg/domain-errors"
	"domainstore/pkg/requestcontext"
)

func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid comment request"))
		return
	}

	ctx := r.Context()
	if err := h.comments.Create(ctx, requestcontext.User(ctx), req.Content); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "submitted"})
}
