package dto

import (
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// JoinCoupleRequest represents request to join a couple via invite code
type JoinCoupleRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// CoupleResponse represents a couple in API responses
type CoupleResponse struct {
	ID         string    `json:"id"`
	CreatorID  string    `json:"creator_id"`
	PartnerID  string    `json:"partner_id,omitempty"`
	InviteCode string    `json:"invite_code,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// CoupleFromDomain converts domain Couple to CoupleResponse. The invite
// code is only included while the couple is still pending.
func CoupleFromDomain(c *domain.Couple) *CoupleResponse {
	resp := &CoupleResponse{
		ID:        c.ID,
		CreatorID: c.CreatorID,
		PartnerID: c.PartnerID,
		Status:    c.Status.String(),
		CreatedAt: c.CreatedAt,
	}
	if c.Status == domain.CoupleStatusPending {
		resp.InviteCode = c.InviteCode
	}
	return resp
}
