package dto

import (
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// CreateEventRequest represents request to create an event
type CreateEventRequest struct {
	Title          string     `json:"title" binding:"required,min=1,max=200"`
	Description    string     `json:"description,omitempty" binding:"omitempty,max=2000"`
	StartTime      time.Time  `json:"start_time" binding:"required"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	SourceTimezone string     `json:"source_timezone,omitempty"`
	RepeatRule     string     `json:"repeat_rule,omitempty"`
	Color          string     `json:"color,omitempty"`
}

// UpdateEventRequest represents request to update an event. Pointer
// fields distinguish "not provided" from zero values.
type UpdateEventRequest struct {
	Title          *string    `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description    *string    `json:"description,omitempty" binding:"omitempty,max=2000"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	SourceTimezone *string    `json:"source_timezone,omitempty"`
	RepeatRule     *string    `json:"repeat_rule,omitempty"`
	Color          *string    `json:"color,omitempty"`
	IsCompleted    *bool      `json:"is_completed,omitempty"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID             string     `json:"id"`
	CoupleID       string     `json:"couple_id"`
	OwnerID        string     `json:"owner_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	SourceTimezone string     `json:"source_timezone,omitempty"`
	RepeatRule     string     `json:"repeat_rule,omitempty"`
	Color          string     `json:"color,omitempty"`
	IsCompleted    bool       `json:"is_completed"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// EventFromDomain converts domain Event to EventResponse
func EventFromDomain(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:             e.ID,
		CoupleID:       e.CoupleID,
		OwnerID:        e.OwnerID,
		Title:          e.Title,
		Description:    e.Description,
		StartTime:      e.StartTime,
		EndTime:        e.EffectiveEnd(),
		SourceTimezone: e.SourceTimezone,
		RepeatRule:     e.RepeatRule,
		Color:          e.Color,
		IsCompleted:    e.IsCompleted,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// EventsFromDomain converts a slice of domain Events
func EventsFromDomain(events []domain.Event) []*EventResponse {
	out := make([]*EventResponse, 0, len(events))
	for i := range events {
		out = append(out, EventFromDomain(&events[i]))
	}
	return out
}
