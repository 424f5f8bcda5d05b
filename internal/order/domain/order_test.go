package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_RoundTripsThroughJSONColumn(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	original := Timeline{
		{Title: "Order placed", Timestamp: at},
		{Title: "Order cancelled automatically: payment abandoned", Timestamp: at.Add(25 * time.Hour)},
	}

	raw, err := original.Value()
	require.NoError(t, err)

	var decoded Timeline
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, original, decoded)

	// Postgres drivers sometimes hand jsonb back as a string
	var fromString Timeline
	require.NoError(t, fromString.Scan(string(raw.([]byte))))
	assert.Equal(t, original, fromString)
}

func TestTimeline_NilHandling(t *testing.T) {
	var empty Timeline
	raw, err := empty.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw.([]byte)))

	var decoded Timeline
	require.NoError(t, decoded.Scan(nil))
	assert.Empty(t, decoded)

	assert.Error(t, decoded.Scan(42))
}

func TestAppendTimeline_OnlyGrows(t *testing.T) {
	order := Order{ID: "o-1", Status: OrderStatusPending}

	first := time.Now()
	order.AppendTimeline("Order placed", first)
	order.AppendTimeline("Order cancelled automatically: payment abandoned", first.Add(time.Hour))

	require.Len(t, order.Timeline, 2)
	assert.Equal(t, "Order placed", order.Timeline[0].Title)
	assert.Equal(t, "Order cancelled automatically: payment abandoned", order.Timeline[1].Title)
	assert.True(t, order.Timeline[1].Timestamp.After(order.Timeline[0].Timestamp))
}
