package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/dto"
	"github.com/andrewsnewton/couplespace-sub003/internal/service"
	"github.com/andrewsnewton/couplespace-sub003/pkg/response"
)

// WellnessHandler handles wellness HTTP requests
type WellnessHandler struct {
	wellnessService service.WellnessService
}

// NewWellnessHandler creates a new WellnessHandler
func NewWellnessHandler(wellnessService service.WellnessService) *WellnessHandler {
	return &WellnessHandler{wellnessService: wellnessService}
}

// UpsertEntry records the caller's metrics for a day
// PUT /api/v1/wellness/entries
func (h *WellnessHandler) UpsertEntry(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.UpsertWellnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.wellnessService.UpsertEntry(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotInCouple) {
			response.Forbidden(c, "User does not belong to a couple")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, dto.WellnessEntryFromDomain(entry))
}

// GetDay retrieves both partners' entries for a date
// GET /api/v1/wellness/entries/:date
func (h *WellnessHandler) GetDay(c *gin.Context) {
	userID := c.GetString("user_id")
	entryDate := c.Param("date")

	entries, err := h.wellnessService.GetDay(c.Request.Context(), userID, entryDate)
	if err != nil {
		if errors.Is(err, domain.ErrNotInCouple) {
			response.Forbidden(c, "User does not belong to a couple")
			return
		}
		response.InternalError(c, err)
		return
	}

	out := make([]*dto.WellnessEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.WellnessEntryFromDomain(&entries[i]))
	}
	response.Success(c, out)
}

// SearchFood searches the food catalogue
// GET /api/v1/wellness/foods?q=query&limit=n
func (h *WellnessHandler) SearchFood(c *gin.Context) {
	var req dto.FoodSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, err := h.wellnessService.SearchFood(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.FoodItemsFromDomain(items))
}
