// Package timeline decides which of a couple's events render on a given
// calendar day and how overlapping events are laid out side by side.
// All functions are pure and synchronous; they operate on an
// already-materialized event list and never perform I/O.
package timeline

import (
	"sort"
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// OwnershipFilter selects whose events are visible
type OwnershipFilter string

const (
	// FilterSelf shows only the viewer's own events
	FilterSelf OwnershipFilter = "self"
	// FilterPartner shows only the partner's events
	FilterPartner OwnershipFilter = "partner"
	// FilterAny skips the ownership check entirely
	FilterAny OwnershipFilter = "any"
)

// IsValid checks if the filter is a known OwnershipFilter
func (f OwnershipFilter) IsValid() bool {
	switch f {
	case FilterSelf, FilterPartner, FilterAny:
		return true
	}
	return false
}

// DateLayout is the wire format for date-only values.
const DateLayout = "2006-01-02"

// boundaryShiftDays is the tolerance window, in days, for events whose
// source timezone sits far from the viewer's. Offsets beyond two days
// (in theory possible for extreme UTC+14/UTC-12 pairings) are not
// covered; see DESIGN.md.
const boundaryShiftDays = 2

// DisplayRequest describes one day-view render request
type DisplayRequest struct {
	ViewerID       string
	ViewerTimezone string          // IANA id; invalid values fall back to UTC
	Date           string          // date-only, yyyy-mm-dd, in the viewer's timezone
	Filter         OwnershipFilter // defaults to FilterAny when empty
}

// VisibleEvents filters events down to those that should render on the
// requested date and returns them ordered by start time. The decision is
// fail-closed: an event whose times cannot be interpreted is simply not
// visible, and an unparsable request yields an empty result. It never
// panics and never returns an error.
func VisibleEvents(events []domain.Event, req DisplayRequest) []domain.Event {
	viewerLoc := resolveLocation(req.ViewerTimezone, time.UTC)

	selected, err := time.ParseInLocation(DateLayout, req.Date, viewerLoc)
	if err != nil {
		return nil
	}

	filter := req.Filter
	if filter == "" {
		filter = FilterAny
	}

	visible := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if !passesOwnership(ev, req.ViewerID, filter) {
			continue
		}
		if isVisibleOn(ev, selected, viewerLoc) {
			visible = append(visible, ev)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].StartTime.Equal(visible[j].StartTime) {
			return visible[i].ID < visible[j].ID
		}
		return visible[i].StartTime.Before(visible[j].StartTime)
	})

	return visible
}

func passesOwnership(ev domain.Event, viewerID string, filter OwnershipFilter) bool {
	switch filter {
	case FilterSelf:
		return ev.OwnerID == viewerID
	case FilterPartner:
		return ev.OwnerID != viewerID
	default:
		return true
	}
}

// isVisibleOn implements the visibility predicate: the event's start or
// end date (in its effective timezone) equals the selected date, the
// event spans across the selected date, or the start date lands on one
// of the boundary-shifted comparison dates.
func isVisibleOn(ev domain.Event, selected time.Time, viewerLoc *time.Location) bool {
	loc := resolveLocation(ev.SourceTimezone, viewerLoc)

	startDate := localDate(ev.StartTime.In(loc))
	endDate := localDate(ev.EffectiveEnd().In(loc))

	// selected is midnight in the viewer's timezone; its calendar date
	// in the event's timezone may differ by a day in either direction.
	selDate := localDate(selected.In(loc))

	if startDate.Equal(selDate) || endDate.Equal(selDate) {
		return true
	}
	if startDate.Before(selDate) && selDate.Before(endDate) {
		return true
	}

	for shift := -boundaryShiftDays; shift <= boundaryShiftDays; shift++ {
		if shift == 0 {
			continue
		}
		shifted := localDate(selected.AddDate(0, 0, shift).In(loc))
		if startDate.Equal(shifted) {
			return true
		}
	}

	return false
}

// resolveLocation loads an IANA timezone id, substituting fallback for
// empty or invalid values. It never fails.
func resolveLocation(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}

// localDate truncates a local time to its calendar date, normalized to
// UTC midnight so dates from different zones compare directly.
func localDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
