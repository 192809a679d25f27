package domain

import (
	"strings"
	"time"
)

// MaxMessageLength bounds a single chat message body.
const MaxMessageLength = 4000

// Message represents a chat message inside a couple's conversation
type Message struct {
	ID        string    `json:"id"`
	CoupleID  string    `json:"couple_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate validates the message fields
func (m *Message) Validate() error {
	body := strings.TrimSpace(m.Body)
	if body == "" {
		return ErrEmptyMessage
	}
	if len(body) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}
