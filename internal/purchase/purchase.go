// Package purchase drives a purchase attempt through availability
// reconciliation: re-check ground truth, partition the request into still-
// available and now-sold, correct the local catalog immediately, and only
// then let the user decide whether to continue with what is left.
package purchase

import (
	"domainstore/internal/catalog/models"
)

// State is the protocol position of one purchase attempt.
type State string

const (
	StateIdle             State = "idle"
	StateChecking         State = "checking"
	StateAwaitingDecision State = "awaiting_decision"
	StateSubmitting       State = "submitting"
	StateDone             State = "done"
	StateAborted          State = "aborted"
)

// Result is the partition computed from a re-fetch at request time. Names,
// not identifiers: the re-check joins on the ticket key. Never persisted.
type Result struct {
	Available []string `json:"available"`
	Sold      []string `json:"sold"`
}

// Clean reports whether every requested domain was still available.
func (r Result) Clean() bool {
	return len(r.Sold) == 0
}

// Draft is the transient snapshot of records chosen for a pending request.
// It exists only between Begin and Confirm/Abort and is discarded after
// either outcome.
type Draft struct {
	ID      string
	Domains []*models.DomainRecord
	Result  Result
	State   State
}

// availableDomains returns the draft records whose names survived the re-check.
func (d *Draft) availableDomains() []*models.DomainRecord {
	keep := make(map[string]struct{}, len(d.Result.Available))
	for _, name := range d.Result.Available {
		keep[name] = struct{}{}
	}
	out := make([]*models.DomainRecord, 0, len(d.Result.Available))
	for _, rec := range d.Domains {
		if _, ok := keep[rec.Name]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Outcome is what a protocol step reports back to the transport layer.
type Outcome struct {
	State     State    `json:"state"`
	Result    Result   `json:"result"`
	DraftID   string   `json:"draft_id,omitempty"`
	Submitted []string `json:"submitted,omitempty"`
	Total     float64  `json:"total,omitempty"`
}
