// Package models defines the catalog domain records and the view criteria
// applied to them. All wire-level defaulting happens once at ingestion so the
// rest of the system never re-derives fallbacks ad hoc.
package models

import (
	"time"
)

// TypeFallback is assumed when a listing carries no explicit type.
const TypeFallback = "Shell"

// Scores and prices below these bounds are clamped by the range filters.
const (
	ScoreMax = 100
	PriceMax = 10000
)

// DomainRecord is one catalog listing, an immutable snapshot as fetched.
// Records are only ever mutated by whole-snapshot replacement, with one
// exception: reconciliation may flip Status from available to sold.
//
// Invariants:
//   - Name is unique within one fetch and is the join key for ticket matching
//     (a deliberate denormalization: tickets carry names, not IDs)
//   - DisplayPrice is derived once at ingestion and never recomputed
//   - Status moves available→sold within a session; the reconciliation
//     protocol tolerates the reverse defensively but nothing produces it
type DomainRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"domainName"`
	Country      string    `json:"country"`
	Category     string    `json:"category"`
	Type         string    `json:"type"`
	DA           int       `json:"da"`
	PA           int       `json:"pa"`
	SS           int       `json:"ss"`
	Backlinks    int       `json:"backlink"`
	Price        float64   `json:"price"`
	DisplayPrice float64   `json:"displayPrice"`
	Status       bool      `json:"status"`
	PostedAt     time.Time `json:"postDateTime"`
}

// Available reports whether the domain is still purchasable.
func (d *DomainRecord) Available() bool {
	return d.Status
}

// WireDomain is the upstream JSON shape with its optional fields intact.
type WireDomain struct {
	ID        string     `json:"id"`
	Name      string     `json:"domainName"`
	Country   string     `json:"country"`
	Category  string     `json:"category"`
	Type      string     `json:"type"`
	DA        *int       `json:"da"`
	PA        *int       `json:"pa"`
	SS        *int       `json:"ss"`
	Backlinks *int       `json:"backlink"`
	Price     *float64   `json:"price"`
	Status    bool       `json:"status"`
	PostedAt  *time.Time `json:"postDateTime"`
	CreatedAt *time.Time `json:"createdAt"`
}

// FromWire applies every ingestion default in one place: missing scores and
// prices become 0, a missing type becomes TypeFallback, the posted timestamp
// falls back to createdAt, and the display price applies the pricing floor
// (a base price of exactly 1 is shown as 10).
func FromWire(w WireDomain) *DomainRecord {
	d := &DomainRecord{
		ID:       w.ID,
		Name:     w.Name,
		Country:  w.Country,
		Category: w.Category,
		Type:     w.Type,
		Status:   w.Status,
	}
	if d.Type == "" {
		d.Type = TypeFallback
	}
	if w.DA != nil {
		d.DA = *w.DA
	}
	if w.PA != nil {
		d.PA = *w.PA
	}
	if w.SS != nil {
		d.SS = *w.SS
	}
	if w.Backlinks != nil && *w.Backlinks > 0 {
		d.Backlinks = *w.Backlinks
	}
	if w.Price != nil {
		d.Price = *w.Price
	}
	d.DisplayPrice = displayPrice(d.Price)
	switch {
	case w.PostedAt != nil:
		d.PostedAt = *w.PostedAt
	case w.CreatedAt != nil:
		d.PostedAt = *w.CreatedAt
	}
	return d
}

// FromWireList decodes a full upstream payload, dropping nameless entries.
func FromWireList(wire []WireDomain) []*DomainRecord {
	out := make([]*DomainRecord, 0, len(wire))
	for _, w := range wire {
		if w.Name == "" {
			continue
		}
		out = append(out, FromWire(w))
	}
	return out
}

// displayPrice implements the pricing floor: listings priced at the sentinel
// value 1 are displayed (and summed) as 10.
func displayPrice(base float64) float64 {
	if base == 1 {
		return 10
	}
	return base
}
