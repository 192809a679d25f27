package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/dto"
	"github.com/andrewsnewton/couplespace-sub003/internal/service"
	"github.com/andrewsnewton/couplespace-sub003/pkg/response"
)

// ChatHandler handles couple chat HTTP requests
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Send stores a message in the couple's conversation
// POST /api/v1/chat/messages
func (h *ChatHandler) Send(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), userID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotInCouple):
			response.Forbidden(c, "User does not belong to a couple")
		case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrMessageTooLong):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.Created(c, dto.MessageFromDomain(message))
}

// History retrieves messages before a cursor, newest first
// GET /api/v1/chat/messages?before=RFC3339&limit=n
func (h *ChatHandler) History(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.MessageHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var before time.Time
	if req.Before != "" {
		parsed, err := time.Parse(time.RFC3339, req.Before)
		if err != nil {
			response.BadRequest(c, "before must be an RFC3339 timestamp")
			return
		}
		before = parsed
	}

	messages, err := h.chatService.GetHistory(c.Request.Context(), userID, before, req.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotInCouple) {
			response.Forbidden(c, "User does not belong to a couple")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.MessagesFromDomain(messages))
}
