package domain

import "time"

// CoupleStatus represents the pairing state of a couple
type CoupleStatus string

const (
	CoupleStatusPending CoupleStatus = "pending" // created, waiting for the partner to join
	CoupleStatusActive  CoupleStatus = "active"  // both partners joined
)

// IsValid checks if the status is a valid CoupleStatus
func (s CoupleStatus) IsValid() bool {
	switch s {
	case CoupleStatusPending, CoupleStatusActive:
		return true
	}
	return false
}

// String returns the string representation of CoupleStatus
func (s CoupleStatus) String() string {
	return string(s)
}

// Couple links two users into a shared space
type Couple struct {
	ID         string       `json:"id"`
	CreatorID  string       `json:"creator_id"`
	PartnerID  string       `json:"partner_id,omitempty"`
	InviteCode string       `json:"invite_code,omitempty"`
	Status     CoupleStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// HasMember reports whether the given user belongs to the couple
func (c *Couple) HasMember(userID string) bool {
	return c.CreatorID == userID || c.PartnerID == userID
}

// PartnerOf returns the other member's id, or empty if the couple is
// still pending or the user is not a member
func (c *Couple) PartnerOf(userID string) string {
	switch userID {
	case c.CreatorID:
		return c.PartnerID
	case c.PartnerID:
		return c.CreatorID
	}
	return ""
}

// CanJoin reports whether a user may join via invite code
func (c *Couple) CanJoin(userID string) bool {
	return c.Status == CoupleStatusPending && c.PartnerID == "" && c.CreatorID != userID
}
