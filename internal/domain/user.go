package domain

import "time"

// User represents a registered account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Timezone     string    `json:"timezone"` // IANA id, the user's preferred display timezone
	CoupleID     string    `json:"couple_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims are the fields carried in an access token
type Claims struct {
	UserID   string
	Email    string
	CoupleID string
}

// TokenPair bundles an access token with its refresh token
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Session represents a refresh token session
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"`
	UserAgent    string    `json:"user_agent,omitempty"`
	IP           string    `json:"ip,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsExpired reports whether the session's refresh token has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
