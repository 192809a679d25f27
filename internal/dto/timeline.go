package dto

import (
	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/timeline"
)

// TimelineRequest represents query parameters for a day timeline
type TimelineRequest struct {
	Date     string `form:"date" binding:"required"`
	Filter   string `form:"filter,omitempty"`
	Timezone string `form:"timezone,omitempty"`
}

// FrameResponse represents an event's computed position on the day canvas
type FrameResponse struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TimelineEntryResponse pairs a visible event with its layout frame
type TimelineEntryResponse struct {
	Event *EventResponse `json:"event"`
	Frame FrameResponse  `json:"frame"`
}

// TimelineResponse represents the resolved timeline for one day
type TimelineResponse struct {
	Date     string                   `json:"date"`
	Timezone string                   `json:"timezone"`
	Entries  []*TimelineEntryResponse `json:"entries"`
}

// TimelineFromDomain assembles a TimelineResponse from visible events
// and their frames
func TimelineFromDomain(date, tz string, events []domain.Event, frames map[string]timeline.Frame) *TimelineResponse {
	entries := make([]*TimelineEntryResponse, 0, len(events))
	for i := range events {
		f := frames[events[i].ID]
		entries = append(entries, &TimelineEntryResponse{
			Event: EventFromDomain(&events[i]),
			Frame: FrameResponse{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
		})
	}
	return &TimelineResponse{
		Date:     date,
		Timezone: tz,
		Entries:  entries,
	}
}
