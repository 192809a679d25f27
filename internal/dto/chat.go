package dto

import (
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// SendMessageRequest represents request to send a chat message
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,min=1,max=4000"`
}

// MessageResponse represents a chat message in API responses
type MessageResponse struct {
	ID       string    `json:"id"`
	SenderID string    `json:"sender_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

// MessageHistoryRequest represents query parameters for message history
type MessageHistoryRequest struct {
	Before string `form:"before,omitempty"` // RFC3339 cursor
	Limit  int    `form:"limit,omitempty" binding:"omitempty,min=1,max=100"`
}

// MessageFromDomain converts domain Message to MessageResponse
func MessageFromDomain(m *domain.Message) *MessageResponse {
	return &MessageResponse{
		ID:       m.ID,
		SenderID: m.SenderID,
		Body:     m.Body,
		SentAt:   m.SentAt,
	}
}

// MessagesFromDomain converts a slice of domain Messages
func MessagesFromDomain(messages []domain.Message) []*MessageResponse {
	out := make([]*MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, MessageFromDomain(&messages[i]))
	}
	return out
}
