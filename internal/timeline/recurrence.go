package timeline

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// maxOccurrencesPerEvent caps recurrence expansion so a malformed or
// unbounded rule cannot blow up a single day-view request.
const maxOccurrencesPerEvent = 366

// ExpandOccurrences materializes recurring events into concrete
// occurrences inside [rangeStart, rangeEnd]. Non-recurring events pass
// through unchanged. An occurrence keeps the base event's fields but
// gets a unique per-instance ID so layout frames stay addressable.
//
// An invalid repeat rule degrades to the single base occurrence rather
// than dropping the event, matching the resolver's never-throw policy.
func ExpandOccurrences(events []domain.Event, rangeStart, rangeEnd time.Time) []domain.Event {
	if rangeEnd.Before(rangeStart) {
		return nil
	}

	out := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if !ev.IsRecurring() {
			out = append(out, ev)
			continue
		}
		out = append(out, expandEvent(ev, rangeStart, rangeEnd)...)
	}
	return out
}

func expandEvent(ev domain.Event, rangeStart, rangeEnd time.Time) []domain.Event {
	r, err := rrule.StrToRRule(ev.RepeatRule)
	if err != nil {
		return []domain.Event{ev}
	}
	r.DTStart(ev.StartTime)

	// Between operates in the rule's timezone; align the window with
	// the event's own start location.
	loc := ev.StartTime.Location()
	starts := r.Between(rangeStart.In(loc), rangeEnd.In(loc), true)
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
	}

	dur := ev.Duration()
	out := make([]domain.Event, 0, len(starts))
	for _, start := range starts {
		occ := ev
		if !start.Equal(ev.StartTime) {
			occ.ID = occurrenceID(ev.ID, start)
		}
		occ.StartTime = start
		end := start.Add(dur)
		occ.EndTime = &end
		out = append(out, occ)
	}
	return out
}

// occurrenceID derives a stable per-instance id from the base event id
// and the occurrence's start instant.
func occurrenceID(baseID string, start time.Time) string {
	return baseID + "@" + start.UTC().Format(time.RFC3339)
}
