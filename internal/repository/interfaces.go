package repository

import (
	"context"
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// UserRepository defines user persistence operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update updates a user
	Update(ctx context.Context, user *domain.User) error
	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// SessionRepository defines refresh session persistence operations
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *domain.Session) error
	// GetByRefreshToken retrieves a session by its refresh token
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	// Delete deletes a session by ID
	Delete(ctx context.Context, id string) error
	// DeleteByUserID deletes all of a user's sessions
	DeleteByUserID(ctx context.Context, userID string) error
}

// CoupleRepository defines couple persistence operations
type CoupleRepository interface {
	// Create creates a new couple
	Create(ctx context.Context, couple *domain.Couple) error
	// GetByID retrieves a couple by ID
	GetByID(ctx context.Context, id string) (*domain.Couple, error)
	// GetByInviteCode retrieves a pending couple by invite code
	GetByInviteCode(ctx context.Context, code string) (*domain.Couple, error)
	// GetByMember retrieves the couple a user belongs to
	GetByMember(ctx context.Context, userID string) (*domain.Couple, error)
	// Update updates a couple
	Update(ctx context.Context, couple *domain.Couple) error
}

// EventRepository defines event persistence operations
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *domain.Event) error
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// ListByCouple retrieves a couple's events intersecting a time range
	ListByCouple(ctx context.Context, coupleID string, from, to time.Time) ([]domain.Event, error)
	// ListRecurringByCouple retrieves a couple's recurring events
	ListRecurringByCouple(ctx context.Context, coupleID string) ([]domain.Event, error)
	// Update updates an event
	Update(ctx context.Context, event *domain.Event) error
	// Delete deletes an event by ID
	Delete(ctx context.Context, id string) error
	// ListDueReminders retrieves events starting within the window that
	// have not been reminded yet
	ListDueReminders(ctx context.Context, from, to time.Time, limit int) ([]domain.Event, error)
	// MarkReminded records that a reminder was sent for the event
	MarkReminded(ctx context.Context, id string, at time.Time) error
}

// MessageRepository defines chat message persistence operations
type MessageRepository interface {
	// Create creates a new message
	Create(ctx context.Context, message *domain.Message) error
	// ListByCouple retrieves messages for a couple before a cursor,
	// newest first
	ListByCouple(ctx context.Context, coupleID string, before time.Time, limit int) ([]domain.Message, error)
}

// WellnessRepository defines wellness entry persistence operations
type WellnessRepository interface {
	// Upsert inserts or updates the entry for a user and date
	Upsert(ctx context.Context, entry *domain.WellnessEntry) error
	// GetByUserAndDate retrieves an entry for a user on a date
	GetByUserAndDate(ctx context.Context, userID, entryDate string) (*domain.WellnessEntry, error)
	// ListByCoupleAndRange retrieves a couple's entries in a date range
	ListByCoupleAndRange(ctx context.Context, coupleID, fromDate, toDate string) ([]domain.WellnessEntry, error)
}

// FoodRepository defines food catalogue lookup operations
type FoodRepository interface {
	// Search retrieves food items matching a name query
	Search(ctx context.Context, query string, limit int) ([]domain.FoodItem, error)
}

// FoodCache defines cached food search results
type FoodCache interface {
	// Get retrieves cached search results, (nil, nil) on miss
	Get(ctx context.Context, query string, limit int) ([]domain.FoodItem, error)
	// Set stores search results for a query
	Set(ctx context.Context, query string, limit int, items []domain.FoodItem) error
}
