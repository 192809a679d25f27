package dto

import (
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// RegisterRequest represents request to create a new account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Timezone string `json:"timezone,omitempty"`
}

// LoginRequest represents request to authenticate
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents request to rotate a token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthResponse represents the result of register, login or refresh
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CoupleID  string    `json:"couple_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest represents request to update profile fields
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Timezone string `json:"timezone,omitempty"`
}

// UserFromDomain converts domain User to UserResponse
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Timezone:  u.Timezone,
		CoupleID:  u.CoupleID,
		CreatedAt: u.CreatedAt,
	}
}

// TokensFromDomain converts domain TokenPair to TokenResponse
func TokensFromDomain(tp *domain.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:  tp.AccessToken,
		RefreshToken: tp.RefreshToken,
		ExpiresIn:    tp.ExpiresIn,
	}
}
