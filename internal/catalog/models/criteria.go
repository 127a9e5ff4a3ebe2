package models

import "time"

// DateLayout is the wire format for the posted-date criterion.
const DateLayout = "2006-01-02"

// StatusFilter narrows the catalog by availability.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusAvailable StatusFilter = "available"
	StatusSold      StatusFilter = "sold"
)

// Valid reports whether the filter is one of the known values.
func (s StatusFilter) Valid() bool {
	switch s {
	case StatusAll, StatusAvailable, StatusSold:
		return true
	}
	return false
}

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortDAHigh    SortKey = "da_high"
	SortDALow     SortKey = "da_low"
	SortPriceHigh SortKey = "price_high"
	SortPriceLow  SortKey = "price_low"
)

// Range is an inclusive [Min, Max] numeric filter. Min ≤ Max is an invariant
// of the criteria object itself: pushing one bound past the other drags the
// other bound along rather than producing an empty-by-accident range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SetMin updates the lower bound, raising Max to match if overtaken.
func (r *Range) SetMin(v float64) {
	r.Min = v
	if r.Min > r.Max {
		r.Max = r.Min
	}
}

// SetMax updates the upper bound, lowering Min to match if undercut.
func (r *Range) SetMax(v float64) {
	r.Max = v
	if r.Max < r.Min {
		r.Min = r.Max
	}
}

// Normalize restores Min ≤ Max for ranges built wholesale (e.g. decoded from
// a request body), favoring the lower bound.
func (r *Range) Normalize() {
	if r.Min > r.Max {
		r.Max = r.Min
	}
}

// Contains reports whether v lies within the inclusive range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Criteria is the full filter/sort state for one session's catalog view.
// It is created with defaults, replaced wholesale on each edit, and reset to
// defaults (except the name text) on explicit clear. PostedOn restricts the
// view to domains posted on one calendar day ("2006-01-02"); empty shows
// every day. Stepping a day back or forward and "show all dates" are plain
// edits of this field.
type Criteria struct {
	Name       string       `json:"name"`
	Countries  []string     `json:"countries"`
	Categories []string     `json:"categories"`
	Types      []string     `json:"types"`
	PostedOn   string       `json:"posted_on"`
	Status     StatusFilter `json:"status"`
	DA         Range        `json:"da"`
	PA         Range        `json:"pa"`
	SS         Range        `json:"ss"`
	Price      Range        `json:"price"`
	Sort       SortKey      `json:"sort"`
}

// DefaultCriteria returns the wide-open view: all ranges at full width, no
// multi-select restrictions, newest first.
func DefaultCriteria() Criteria {
	return Criteria{
		Status: StatusAll,
		DA:     Range{Min: 0, Max: ScoreMax},
		PA:     Range{Min: 0, Max: ScoreMax},
		SS:     Range{Min: 0, Max: ScoreMax},
		Price:  Range{Min: 0, Max: PriceMax},
		Sort:   SortNewest,
	}
}

// Cleared returns default criteria with the name text preserved.
func (c Criteria) Cleared() Criteria {
	next := DefaultCriteria()
	next.Name = c.Name
	return next
}

// Normalize repairs a criteria object decoded from a request: unknown status
// falls back to "all", an unparseable posted-on date is dropped, and each
// range restores Min ≤ Max.
func (c *Criteria) Normalize() {
	if !c.Status.Valid() {
		c.Status = StatusAll
	}
	if c.PostedOn != "" {
		if _, err := time.Parse(DateLayout, c.PostedOn); err != nil {
			c.PostedOn = ""
		}
	}
	c.DA.Normalize()
	c.PA.Normalize()
	c.SS.Normalize()
	c.Price.Normalize()
}
