package domain

import (
	"strings"
	"time"
)

// DefaultEventDuration is assumed when an event has no explicit end time.
const DefaultEventDuration = time.Hour

// Event represents a shared calendar event
type Event struct {
	ID          string `json:"id"`
	CoupleID    string `json:"couple_id"`
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// SourceTimezone is the IANA timezone the event was created in.
	// Empty or invalid values fall back to the viewer's timezone at
	// display time.
	SourceTimezone string `json:"source_timezone,omitempty"`

	// RepeatRule is an optional RRULE string for recurring events.
	RepeatRule string `json:"repeat_rule,omitempty"`

	Color       string     `json:"color,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	RemindedAt  *time.Time `json:"reminded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveEnd returns the end time, defaulting to start + 1h when unset.
func (e *Event) EffectiveEnd() time.Time {
	if e.EndTime != nil && !e.EndTime.IsZero() {
		return *e.EndTime
	}
	return e.StartTime.Add(DefaultEventDuration)
}

// Duration returns the event's effective duration
func (e *Event) Duration() time.Duration {
	return e.EffectiveEnd().Sub(e.StartTime)
}

// IsRecurring reports whether the event carries a repeat rule
func (e *Event) IsRecurring() bool {
	return strings.TrimSpace(e.RepeatRule) != ""
}

// BelongsToCouple checks couple membership of the event
func (e *Event) BelongsToCouple(coupleID string) bool {
	return e.CoupleID == coupleID
}

// OwnedBy checks if the event is owned by the given user
func (e *Event) OwnedBy(userID string) bool {
	return e.OwnerID == userID
}

// Validate validates the event's required fields
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrInvalidEventTitle
	}
	if e.StartTime.IsZero() {
		return ErrInvalidEventTime
	}
	if e.EndTime != nil && !e.EndTime.IsZero() && e.EndTime.Before(e.StartTime) {
		return ErrInvalidEventTime
	}
	return nil
}
