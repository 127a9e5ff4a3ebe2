package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestFromWire(t *testing.T) {
	posted := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	created := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("all fields carried over", func(t *testing.T) {
		d := FromWire(WireDomain{
			ID:        "d1",
			Name:      "example.com",
			Country:   "US",
			Category:  "Tech",
			Type:      "Expired",
			DA:        intPtr(40),
			PA:        intPtr(35),
			SS:        intPtr(12),
			Backlinks: intPtr(200),
			Price:     floatPtr(150),
			Status:    true,
			PostedAt:  timePtr(posted),
		})
		assert.Equal(t, "example.com", d.Name)
		assert.Equal(t, "Expired", d.Type)
		assert.Equal(t, 40, d.DA)
		assert.Equal(t, 200, d.Backlinks)
		assert.Equal(t, 150.0, d.Price)
		assert.Equal(t, 150.0, d.DisplayPrice)
		assert.Equal(t, posted, d.PostedAt)
		assert.True(t, d.Available())
	})

	t.Run("missing optionals default to zero", func(t *testing.T) {
		d := FromWire(WireDomain{ID: "d2", Name: "bare.com"})
		assert.Zero(t, d.DA)
		assert.Zero(t, d.PA)
		assert.Zero(t, d.SS)
		assert.Zero(t, d.Backlinks)
		assert.Zero(t, d.Price)
		assert.True(t, d.PostedAt.IsZero())
	})

	t.Run("missing type falls back", func(t *testing.T) {
		d := FromWire(WireDomain{Name: "untyped.com"})
		assert.Equal(t, TypeFallback, d.Type)
	})

	t.Run("price of exactly one displays as ten", func(t *testing.T) {
		d := FromWire(WireDomain{Name: "floor.com", Price: floatPtr(1)})
		assert.Equal(t, 1.0, d.Price)
		assert.Equal(t, 10.0, d.DisplayPrice)
	})

	t.Run("other prices display unchanged", func(t *testing.T) {
		for _, price := range []float64{0, 0.5, 2, 9, 10, 999} {
			d := FromWire(WireDomain{Name: "x.com", Price: floatPtr(price)})
			assert.Equal(t, price, d.DisplayPrice, "price %v", price)
		}
	})

	t.Run("posted timestamp falls back to createdAt", func(t *testing.T) {
		d := FromWire(WireDomain{Name: "late.com", CreatedAt: timePtr(created)})
		assert.Equal(t, created, d.PostedAt)

		d = FromWire(WireDomain{Name: "both.com", PostedAt: timePtr(posted), CreatedAt: timePtr(created)})
		assert.Equal(t, posted, d.PostedAt)
	})

	t.Run("non-positive backlink counts dropped", func(t *testing.T) {
		d := FromWire(WireDomain{Name: "neg.com", Backlinks: intPtr(-3)})
		assert.Zero(t, d.Backlinks)
	})
}

func TestFromWireList(t *testing.T) {
	out := FromWireList([]WireDomain{
		{ID: "a", Name: "a.com"},
		{ID: "b"}, // nameless entries are dropped
		{ID: "c", Name: "c.com"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "a.com", out[0].Name)
	assert.Equal(t, "c.com", out[1].Name)
}
