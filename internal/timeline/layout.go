package timeline

import (
	"sort"
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// Frame is the rendered rectangle of one event in the day view, in
// pixels relative to the top-left of the timeline column.
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutConfig controls day-view geometry
type LayoutConfig struct {
	PixelsPerMinute float64
	AvailableWidth  float64
	// MinEventHeight keeps very short events tappable
	MinEventHeight float64
}

// DefaultLayoutConfig returns the geometry used by the mobile day view
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		PixelsPerMinute: 1.0,
		AvailableWidth:  320.0,
		MinEventHeight:  24.0,
	}
}

// GroupOverlapping partitions events into maximal runs of mutually
// time-overlapping events. Events are sorted by start time, then swept:
// an event joins the open group while its start precedes the maximum
// end time seen so far; otherwise it opens a new group. Every event
// lands in exactly one group and the sweep is deterministic for a
// given input.
func GroupOverlapping(events []domain.Event) [][]domain.Event {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartTime.Equal(sorted[j].StartTime) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var groups [][]domain.Event
	current := []domain.Event{sorted[0]}
	maxEnd := sorted[0].EffectiveEnd()

	for _, ev := range sorted[1:] {
		if ev.StartTime.Before(maxEnd) {
			current = append(current, ev)
			if end := ev.EffectiveEnd(); end.After(maxEnd) {
				maxEnd = end
			}
			continue
		}
		groups = append(groups, current)
		current = []domain.Event{ev}
		maxEnd = ev.EffectiveEnd()
	}
	groups = append(groups, current)

	return groups
}

// Layout assigns a Frame to every event. Events in the same overlap
// group share the horizontal space equally; vertical position and
// height scale linearly with minutes. loc is the timezone the day view
// is rendered in (normally the viewer's).
func Layout(events []domain.Event, loc *time.Location, cfg LayoutConfig) map[string]Frame {
	if loc == nil {
		loc = time.UTC
	}
	if cfg.PixelsPerMinute <= 0 {
		cfg.PixelsPerMinute = DefaultLayoutConfig().PixelsPerMinute
	}
	if cfg.AvailableWidth <= 0 {
		cfg.AvailableWidth = DefaultLayoutConfig().AvailableWidth
	}

	frames := make(map[string]Frame, len(events))

	for _, group := range GroupOverlapping(events) {
		width := cfg.AvailableWidth / float64(len(group))
		for i, ev := range group {
			start := ev.StartTime.In(loc)
			minutes := float64(start.Hour()*60 + start.Minute())

			height := ev.Duration().Minutes() * cfg.PixelsPerMinute
			if height < cfg.MinEventHeight {
				height = cfg.MinEventHeight
			}

			frames[ev.ID] = Frame{
				X:      float64(i) * width,
				Y:      minutes * cfg.PixelsPerMinute,
				Width:  width,
				Height: height,
			}
		}
	}

	return frames
}
