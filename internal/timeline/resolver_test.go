package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

func eventAt(id, owner string, start time.Time, dur time.Duration, tz string) domain.Event {
	end := start.Add(dur)
	return domain.Event{
		ID:             id,
		OwnerID:        owner,
		Title:          "event " + id,
		StartTime:      start,
		EndTime:        &end,
		SourceTimezone: tz,
	}
}

func TestVisibleEvents_SameDayUTC(t *testing.T) {
	// Event 09:00-10:00 UTC, no source timezone, viewed in UTC by its owner.
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	ev := eventAt("a", "u1", start, time.Hour, "")

	visible := VisibleEvents([]domain.Event{ev}, DisplayRequest{
		ViewerID:       "u1",
		ViewerTimezone: "UTC",
		Date:           "2024-06-15",
		Filter:         FilterSelf,
	})

	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].ID)
}

func TestVisibleEvents_OwnershipFilter(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	mine := eventAt("mine", "u1", start, time.Hour, "")
	theirs := eventAt("theirs", "u2", start, time.Hour, "")
	events := []domain.Event{mine, theirs}

	tests := []struct {
		name   string
		filter OwnershipFilter
		want   []string
	}{
		{"self excludes partner", FilterSelf, []string{"mine"}},
		{"partner excludes self", FilterPartner, []string{"theirs"}},
		{"any returns both", FilterAny, []string{"mine", "theirs"}},
		{"empty filter behaves as any", "", []string{"mine", "theirs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := VisibleEvents(events, DisplayRequest{
				ViewerID:       "u1",
				ViewerTimezone: "UTC",
				Date:           "2024-06-15",
				Filter:         tt.filter,
			})
			ids := make([]string, 0, len(visible))
			for _, ev := range visible {
				ids = append(ids, ev.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestVisibleEvents_InvalidSourceTimezoneFallsBack(t *testing.T) {
	// An unresolvable timezone id must fall back to the viewer's zone
	// and never panic.
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	ev := eventAt("a", "u1", start, time.Hour, "Not/AZone")

	var visible []domain.Event
	assert.NotPanics(t, func() {
		visible = VisibleEvents([]domain.Event{ev}, DisplayRequest{
			ViewerID:       "u1",
			ViewerTimezone: "UTC",
			Date:           "2024-06-15",
			Filter:         FilterSelf,
		})
	})
	assert.Len(t, visible, 1)
}

func TestVisibleEvents_SourceTimezonePreferred(t *testing.T) {
	// 23:30 June 15 in New York is already June 16 in UTC. The event's
	// declared timezone decides its calendar date.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	start := time.Date(2024, 6, 15, 23, 30, 0, 0, ny)
	ev := eventAt("late", "u1", start.UTC(), 30*time.Minute, "America/New_York")

	visible := VisibleEvents([]domain.Event{ev}, DisplayRequest{
		ViewerID:       "u1",
		ViewerTimezone: "America/New_York",
		Date:           "2024-06-15",
		Filter:         FilterAny,
	})
	assert.Len(t, visible, 1)
}

func TestVisibleEvents_MultiDaySpan(t *testing.T) {
	// A three-day event is visible on its middle day.
	start := time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC)
	ev := eventAt("trip", "u1", start, 72*time.Hour, "")

	for _, date := range []string{"2024-06-14", "2024-06-15", "2024-06-16", "2024-06-17"} {
		visible := VisibleEvents([]domain.Event{ev}, DisplayRequest{
			ViewerID:       "u1",
			ViewerTimezone: "UTC",
			Date:           date,
			Filter:         FilterAny,
		})
		assert.Len(t, visible, 1, "expected visibility on %s", date)
	}

	visible := VisibleEvents([]domain.Event{ev}, DisplayRequest{
		ViewerID:       "u1",
		ViewerTimezone: "UTC",
		Date:           "2024-06-20",
		Filter:         FilterAny,
	})
	assert.Empty(t, visible)
}

func TestVisibleEvents_TimezoneBoundaryShift(t *testing.T) {
	// Event declared in Auckland, viewed from Los Angeles. Midnight in
	// LA on June 15 is already June 15 evening in Auckland, so an event
	// on Auckland's June 16 shows up via the shifted comparison dates.
	akl, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)

	start := time.Date(2024, 6, 16, 9, 0, 0, 0, akl)
	ev := eventAt("akl", "u1", start.UTC(), time.Hour, "Pacific/Auckland")

	visible := VisibleEvents([]domain.Event{ev}, DisplayRequest{
		ViewerID:       "u1",
		ViewerTimezone: "America/Los_Angeles",
		Date:           "2024-06-15",
		Filter:         FilterAny,
	})
	assert.Len(t, visible, 1)
}

func TestVisibleEvents_BadRequestDateFailsClosed(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	ev := eventAt("a", "u1", start, time.Hour, "")

	visible := VisibleEvents([]domain.Event{ev}, DisplayRequest{
		ViewerID:       "u1",
		ViewerTimezone: "UTC",
		Date:           "not-a-date",
		Filter:         FilterAny,
	})
	assert.Empty(t, visible)
}

func TestVisibleEvents_InvalidViewerTimezoneFallsBackToUTC(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	ev := eventAt("a", "u1", start, time.Hour, "")

	visible := VisibleEvents([]domain.Event{ev}, DisplayRequest{
		ViewerID:       "u1",
		ViewerTimezone: "Mars/Olympus",
		Date:           "2024-06-15",
		Filter:         FilterAny,
	})
	assert.Len(t, visible, 1)
}

func TestVisibleEvents_OrderedByStartTime(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	events := []domain.Event{
		eventAt("c", "u1", day.Add(15*time.Hour), time.Hour, ""),
		eventAt("a", "u1", day.Add(9*time.Hour), time.Hour, ""),
		eventAt("b", "u1", day.Add(12*time.Hour), time.Hour, ""),
	}

	visible := VisibleEvents(events, DisplayRequest{
		ViewerID:       "u1",
		ViewerTimezone: "UTC",
		Date:           "2024-06-15",
		Filter:         FilterAny,
	})

	require.Len(t, visible, 3)
	assert.Equal(t, "a", visible[0].ID)
	assert.Equal(t, "b", visible[1].ID)
	assert.Equal(t, "c", visible[2].ID)
}

func TestVisibleEvents_MissingEndDefaultsToOneHour(t *testing.T) {
	// End of day boundary: 23:30 with no end time runs to 00:30 next
	// day, so the event is also visible on the following date.
	ev := domain.Event{
		ID:        "open",
		OwnerID:   "u1",
		Title:     "late call",
		StartTime: time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC),
	}

	for _, date := range []string{"2024-06-15", "2024-06-16"} {
		visible := VisibleEvents([]domain.Event{ev}, DisplayRequest{
			ViewerID:       "u1",
			ViewerTimezone: "UTC",
			Date:           date,
			Filter:         FilterAny,
		})
		assert.Len(t, visible, 1, "expected visibility on %s", date)
	}
}
