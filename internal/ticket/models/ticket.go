// Package models defines the ticket shapes exchanged with the backend
// ticketing service and the per-domain status projection derived from them.
package models

import "time"

// Lifecycle statuses a ticket moves through. The backend may introduce more;
// unknown statuses pass through the projection untouched.
const (
	StatusNew  = "New"
	StatusRead = "Read"
	StatusSold = "Sold"
)

// Record is one historical purchase request as the backend reports it.
// MatchingDomains joins on domain names, not identifiers.
type Record struct {
	MatchingDomains []string  `json:"matchingDomains"`
	Status          string    `json:"status"`
	RequestTime     time.Time `json:"request_time"`
}

// CreateRequest is the payload for a new purchase ticket. Price is the summed
// display price of the requested domains, not the base price.
type CreateRequest struct {
	CustomerID     string   `json:"customer_id"`
	RequestDomains []string `json:"request_domains"`
	Price          float64  `json:"price"`
	Status         string   `json:"status"`
}

// StatusMap is the per-domain "latest status" projection. It is rebuilt
// wholesale on every fetch and never patched incrementally.
type StatusMap map[string]string

// Pending reports whether the status gates a repeat request (the domain
// already has an open or completed ticket).
func Pending(status string) bool {
	switch status {
	case StatusNew, StatusRead, StatusSold:
		return true
	}
	return false
}
