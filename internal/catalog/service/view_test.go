package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainstore/internal/catalog/models"
)

func TestWriteCSV(t *testing.T) {
	domains := []*models.DomainRecord{
		{Name: "alpha.com", Country: "US", Category: "Tech", DA: 40, PA: 30, SS: 5, Backlinks: 12, Price: 1, DisplayPrice: 10, Status: true},
		{Name: "gamma.com", Country: "DE", Category: "Retail", Price: 500, DisplayPrice: 500, Status: false},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, domains))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"alpha.com", "US", "Tech", "40", "30", "5", "12", "1", "Available"}, rows[1],
		"exports carry the base price, not the display floor")
	assert.Equal(t, []string{"gamma.com", "DE", "Retail", "0", "0", "0", "0", "500", "Sold"}, rows[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
