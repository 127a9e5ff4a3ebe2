package httptransport

import (
	"net/http"
	"slices"

	"domainstore/internal/ticket/models"
)

// ticketStatusResponse carries the per-domain badge map plus the names whose
// open tickets gate a repeat request.
type ticketStatusResponse struct {
	Statuses models.StatusMap `json:"statuses"`
	Pending  []string         `json:"pending"`
}

func (h *Handler) handleTicketStatuses(w http.ResponseWriter, r *http.Request) {
	statuses := h.tickets.Statuses(r.Context())
	pending := make([]string, 0, len(statuses))
	for name, status := range statuses {
		if models.Pending(status) {
			pending = append(pending, name)
		}
	}
	slices.Sort(pending)
	writeJSON(w, http.StatusOK, ticketStatusResponse{Statuses: statuses, Pending: pending})
}
