package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

func TestExpandOccurrences_NonRecurringPassThrough(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	ev := eventAt("a", "u1", start, time.Hour, "")

	out := ExpandOccurrences([]domain.Event{ev}, start.AddDate(0, 0, -1), start.AddDate(0, 0, 7))
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
	assert.True(t, out[0].StartTime.Equal(start))
}

func TestExpandOccurrences_DailyRule(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	ev := eventAt("a", "u1", start, time.Hour, "")
	ev.RepeatRule = "FREQ=DAILY;COUNT=3"

	out := ExpandOccurrences([]domain.Event{ev}, start.AddDate(0, 0, -1), start.AddDate(0, 0, 10))
	require.Len(t, out, 3)

	// First occurrence keeps the base id, later ones get instance ids.
	assert.Equal(t, "a", out[0].ID)
	assert.NotEqual(t, "a", out[1].ID)
	assert.NotEqual(t, out[1].ID, out[2].ID)

	for i, occ := range out {
		wantStart := start.AddDate(0, 0, i)
		assert.True(t, occ.StartTime.Equal(wantStart), "occurrence %d start", i)
		require.NotNil(t, occ.EndTime)
		assert.Equal(t, time.Hour, occ.EndTime.Sub(occ.StartTime))
	}
}

func TestExpandOccurrences_WindowClipsOccurrences(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	ev := eventAt("a", "u1", start, time.Hour, "")
	ev.RepeatRule = "FREQ=DAILY;COUNT=30"

	out := ExpandOccurrences([]domain.Event{ev}, start.AddDate(0, 0, 5), start.AddDate(0, 0, 7))
	require.NotEmpty(t, out)
	for _, occ := range out {
		assert.False(t, occ.StartTime.Before(start.AddDate(0, 0, 5)))
		assert.False(t, occ.StartTime.After(start.AddDate(0, 0, 7)))
	}
}

func TestExpandOccurrences_BadRuleFallsBackToBaseEvent(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	ev := eventAt("a", "u1", start, time.Hour, "")
	ev.RepeatRule = "FREQ=SOMETIMES"

	out := ExpandOccurrences([]domain.Event{ev}, start.AddDate(0, 0, -1), start.AddDate(0, 0, 7))
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestExpandOccurrences_OccurrencesKeepOwnerAndCouple(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	ev := eventAt("a", "u1", start, time.Hour, "")
	ev.CoupleID = "c1"
	ev.RepeatRule = "FREQ=WEEKLY;COUNT=2"

	out := ExpandOccurrences([]domain.Event{ev}, start.AddDate(0, 0, -1), start.AddDate(0, 1, 0))
	require.Len(t, out, 2)
	for _, occ := range out {
		assert.Equal(t, "u1", occ.OwnerID)
		assert.Equal(t, "c1", occ.CoupleID)
	}
}
