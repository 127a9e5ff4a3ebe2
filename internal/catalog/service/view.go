package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"domainstore/internal/catalog/models"
	"domainstore/internal/session"
)

// View is one computed page of the catalog plus the counts the storefront
// header and status bar display.
type View struct {
	Items         []*models.DomainRecord `json:"items"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
	Start         int                    `json:"start"`
	End           int                    `json:"end"`
	FilteredTotal int                    `json:"filtered_total"`
	TotalPages    int                    `json:"total_pages"`
	Criteria      models.Criteria        `json:"criteria"`
	CatalogTotal  int                    `json:"catalog_total"`
	Available     int                    `json:"available"`
	Sold          int                    `json:"sold"`
	SelectedIDs   []string               `json:"selected_ids"`
}

// csvHeader is the export column layout downstream spreadsheets expect.
var csvHeader = []string{"Domain Name", "Country", "Category", "DA", "PA", "SS", "Backlinks", "Price", "Status"}

// Export writes the session's full filtered, ordered set (not just the
// visible page) as CSV.
func (s *Service) Export(ctx context.Context, sess *session.Session, w io.Writer) error {
	criteria, _, _, _ := sess.Snapshot()
	return writeCSV(w, s.filteredSorted(ctx, criteria))
}

// writeCSV renders records in the fixed export column layout. Prices
// export at their base value; the display floor is a storefront presentation
// rule.
func writeCSV(w io.Writer, domains []*models.DomainRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, d := range domains {
		status := "Sold"
		if d.Status {
			status = "Available"
		}
		row := []string{
			d.Name,
			d.Country,
			d.Category,
			strconv.Itoa(d.DA),
			strconv.Itoa(d.PA),
			strconv.Itoa(d.SS),
			strconv.Itoa(d.Backlinks),
			strconv.FormatFloat(d.Price, 'f', -1, 64),
			status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
