package domain

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionNotFound    = errors.New("session not found")

	// Couple errors
	ErrCoupleNotFound      = errors.New("couple not found")
	ErrAlreadyInCouple     = errors.New("user already belongs to a couple")
	ErrNotInCouple         = errors.New("user does not belong to a couple")
	ErrInvalidInviteCode   = errors.New("invalid invite code")
	ErrCoupleAlreadyPaired = errors.New("couple is already paired")
	ErrCannotJoinOwnCouple = errors.New("cannot join your own couple")

	// Event errors
	ErrEventNotFound     = errors.New("event not found")
	ErrNotEventOwner     = errors.New("only the event owner may modify it")
	ErrInvalidEventTitle = errors.New("event title is required")
	ErrInvalidEventTime  = errors.New("invalid event time range")

	// Chat errors
	ErrEmptyMessage   = errors.New("message body is empty")
	ErrMessageTooLong = errors.New("message body exceeds maximum length")

	// Wellness errors
	ErrEntryNotFound = errors.New("wellness entry not found")
	ErrFoodNotFound  = errors.New("food item not found")
)
