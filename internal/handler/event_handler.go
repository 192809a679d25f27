package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/dto"
	"github.com/andrewsnewton/couplespace-sub003/internal/service"
	"github.com/andrewsnewton/couplespace-sub003/pkg/response"
)

// EventHandler handles event and timeline HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create creates an event
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Created(c, dto.EventFromDomain(event))
}

// Get retrieves an event
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	event, err := h.eventService.GetEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Success(c, dto.EventFromDomain(event))
}

// Update updates an event
// PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), userID, eventID, &req)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Success(c, dto.EventFromDomain(event))
}

// Delete deletes an event
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	if err := h.eventService.DeleteEvent(c.Request.Context(), userID, eventID); err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Event deleted"})
}

// Timeline resolves the day timeline
// GET /api/v1/timeline?date=2006-01-02&filter=self|partner|any&timezone=IANA
func (h *EventHandler) Timeline(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.TimelineRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.eventService.GetTimeline(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotInCouple) {
			response.Forbidden(c, "User does not belong to a couple")
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, result)
}

// ExportICS streams the couple's calendar as an ICS feed
// GET /api/v1/calendar.ics
func (h *EventHandler) ExportICS(c *gin.Context) {
	userID := c.GetString("user_id")

	feed, err := h.eventService.ExportICS(c.Request.Context(), userID)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bonded.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *EventHandler) writeEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotInCouple):
		response.Forbidden(c, "User does not belong to a couple")
	case errors.Is(err, domain.ErrEventNotFound):
		response.NotFound(c, "Event not found")
	case errors.Is(err, domain.ErrNotEventOwner):
		response.Forbidden(c, "Only the event owner may modify it")
	case errors.Is(err, domain.ErrInvalidEventTitle), errors.Is(err, domain.ErrInvalidEventTime):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
