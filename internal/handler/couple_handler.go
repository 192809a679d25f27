package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/dto"
	"github.com/andrewsnewton/couplespace-sub003/internal/service"
	"github.com/andrewsnewton/couplespace-sub003/pkg/response"
)

// CoupleHandler handles pairing HTTP requests
type CoupleHandler struct {
	coupleService service.CoupleService
}

// NewCoupleHandler creates a new CoupleHandler
func NewCoupleHandler(coupleService service.CoupleService) *CoupleHandler {
	return &CoupleHandler{coupleService: coupleService}
}

// Create creates a pending couple and returns its invite code
// POST /api/v1/couple
func (h *CoupleHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	couple, err := h.coupleService.CreateCouple(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyInCouple) {
			response.Conflict(c, "User already belongs to a couple")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Created(c, dto.CoupleFromDomain(couple))
}

// Join pairs the user into a couple via invite code
// POST /api/v1/couple/join
func (h *CoupleHandler) Join(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.JoinCoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	couple, err := h.coupleService.JoinCouple(c.Request.Context(), userID, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyInCouple):
			response.Conflict(c, "User already belongs to a couple")
		case errors.Is(err, domain.ErrInvalidInviteCode):
			response.NotFound(c, "Invalid invite code")
		case errors.Is(err, domain.ErrCannotJoinOwnCouple):
			response.BadRequest(c, "Cannot join your own couple")
		case errors.Is(err, domain.ErrCoupleAlreadyPaired):
			response.Conflict(c, "Couple is already paired")
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.Success(c, dto.CoupleFromDomain(couple))
}

// Get returns the caller's couple
// GET /api/v1/couple
func (h *CoupleHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	couple, err := h.coupleService.GetCouple(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotInCouple) {
			response.NotFound(c, "User does not belong to a couple")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.CoupleFromDomain(couple))
}
