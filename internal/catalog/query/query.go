// Package query holds the pure catalog transformations: filter, sort, and
// pagination. Nothing in here mutates its input or touches shared state, so
// the functions compose freely inside a snapshot read.
package query

import (
	"slices"
	"strings"

	"domainstore/internal/catalog/models"
)

// Filter reduces domains to the subset matching every active criterion.
// Filters combine conjunctively; an empty multi-select means no restriction.
// Survivor order is preserved and the input slice is never modified.
func Filter(domains []*models.DomainRecord, c models.Criteria) []*models.DomainRecord {
	out := make([]*models.DomainRecord, 0, len(domains))
	name := strings.ToLower(strings.TrimSpace(c.Name))
	for _, d := range domains {
		if name != "" && !strings.Contains(strings.ToLower(d.Name), name) {
			continue
		}
		if len(c.Countries) > 0 && !slices.Contains(c.Countries, d.Country) {
			continue
		}
		if len(c.Categories) > 0 && !slices.Contains(c.Categories, d.Category) {
			continue
		}
		if len(c.Types) > 0 && !slices.Contains(c.Types, d.Type) {
			continue
		}
		if c.PostedOn != "" && d.PostedAt.Format(models.DateLayout) != c.PostedOn {
			continue
		}
		switch c.Status {
		case models.StatusAvailable:
			if !d.Status {
				continue
			}
		case models.StatusSold:
			if d.Status {
				continue
			}
		}
		if !c.DA.Contains(float64(d.DA)) || !c.PA.Contains(float64(d.PA)) || !c.SS.Contains(float64(d.SS)) {
			continue
		}
		if !c.Price.Contains(d.DisplayPrice) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Sort orders domains by the given key into a new slice. The sort is stable
// so equal keys keep their relative order across re-renders. An unknown key
// means no re-ordering.
func Sort(domains []*models.DomainRecord, key models.SortKey) []*models.DomainRecord {
	out := slices.Clone(domains)
	switch key {
	case models.SortNewest:
		slices.SortStableFunc(out, func(a, b *models.DomainRecord) int {
			return b.PostedAt.Compare(a.PostedAt)
		})
	case models.SortOldest:
		slices.SortStableFunc(out, func(a, b *models.DomainRecord) int {
			return a.PostedAt.Compare(b.PostedAt)
		})
	case models.SortDAHigh:
		slices.SortStableFunc(out, func(a, b *models.DomainRecord) int {
			return b.DA - a.DA
		})
	case models.SortDALow:
		slices.SortStableFunc(out, func(a, b *models.DomainRecord) int {
			return a.DA - b.DA
		})
	case models.SortPriceHigh:
		slices.SortStableFunc(out, func(a, b *models.DomainRecord) int {
			return compareFloat(b.DisplayPrice, a.DisplayPrice)
		})
	case models.SortPriceLow:
		slices.SortStableFunc(out, func(a, b *models.DomainRecord) int {
			return compareFloat(a.DisplayPrice, b.DisplayPrice)
		})
	}
	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
