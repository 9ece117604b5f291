package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastSevenDayCountsBucketsLocalDays(t *testing.T) {
	now := time.Now()

	// The same instant in local and UTC rendition must land in the same
	// bucket, whatever zone the host runs in.
	counts := lastSevenDayCounts([]time.Time{now, now.UTC()})
	require.Len(t, counts, 7)

	assert.Equal(t, now.Format("2006-01-02"), counts[6].Date)
	assert.Equal(t, now.AddDate(0, 0, -6).Format("2006-01-02"), counts[0].Date)

	assert.Equal(t, 2, counts[6].Count)
	for i := 0; i < 6; i++ {
		assert.Zero(t, counts[i].Count, counts[i].Date)
	}
}

func TestLastSevenDayCountsWindowEdges(t *testing.T) {
	start := startOfToday().AddDate(0, 0, -6)

	counts := lastSevenDayCounts([]time.Time{
		start,                      // first instant of the window
		start.Add(-time.Second),    // just before it
		time.Now().Add(48 * time.Hour), // beyond today
	})

	total := 0
	for _, d := range counts {
		total += d.Count
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, counts[0].Count)
}
