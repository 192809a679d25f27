package service

import (
	"context"
	"strings"
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users     map[string]*domain.User
	createErr error
	updateErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := m.GetByEmail(ctx, email)
	return u != nil, nil
}

// AddUser seeds a user
func (m *MockUserRepository) AddUser(user *domain.User) {
	cp := *user
	m.users[user.ID] = &cp
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	sessions map[string]*domain.Session
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *MockSessionRepository) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	for _, s := range m.sessions {
		if s.RefreshToken == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

// MockCoupleRepository is a mock implementation of CoupleRepository
type MockCoupleRepository struct {
	couples map[string]*domain.Couple
}

func NewMockCoupleRepository() *MockCoupleRepository {
	return &MockCoupleRepository{couples: make(map[string]*domain.Couple)}
}

func (m *MockCoupleRepository) Create(ctx context.Context, couple *domain.Couple) error {
	cp := *couple
	m.couples[couple.ID] = &cp
	return nil
}

func (m *MockCoupleRepository) GetByID(ctx context.Context, id string) (*domain.Couple, error) {
	couple, ok := m.couples[id]
	if !ok {
		return nil, nil
	}
	cp := *couple
	return &cp, nil
}

func (m *MockCoupleRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Couple, error) {
	for _, c := range m.couples {
		if c.InviteCode == code && c.Status == domain.CoupleStatusPending {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockCoupleRepository) GetByMember(ctx context.Context, userID string) (*domain.Couple, error) {
	for _, c := range m.couples {
		if c.CreatorID == userID || c.PartnerID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockCoupleRepository) Update(ctx context.Context, couple *domain.Couple) error {
	cp := *couple
	m.couples[couple.ID] = &cp
	return nil
}

// AddCouple seeds a couple
func (m *MockCoupleRepository) AddCouple(couple *domain.Couple) {
	cp := *couple
	m.couples[couple.ID] = &cp
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	events    map[string]*domain.Event
	createErr error
	reminded  []string
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{events: make(map[string]*domain.Event)}
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *event
	m.events[event.ID] = &cp
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	cp := *event
	return &cp, nil
}

func (m *MockEventRepository) ListByCouple(ctx context.Context, coupleID string, from, to time.Time) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range m.events {
		if e.CoupleID != coupleID {
			continue
		}
		if e.StartTime.Before(to) && e.EffectiveEnd().After(from) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *MockEventRepository) ListRecurringByCouple(ctx context.Context, coupleID string) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range m.events {
		if e.CoupleID == coupleID && e.IsRecurring() {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	cp := *event
	m.events[event.ID] = &cp
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	delete(m.events, id)
	return nil
}

func (m *MockEventRepository) ListDueReminders(ctx context.Context, from, to time.Time, limit int) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range m.events {
		if e.RemindedAt != nil || e.IsRecurring() {
			continue
		}
		if !e.StartTime.Before(from) && e.StartTime.Before(to) {
			out = append(out, *e)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MockEventRepository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	if e, ok := m.events[id]; ok && e.RemindedAt == nil {
		e.RemindedAt = &at
		m.reminded = append(m.reminded, id)
	}
	return nil
}

// AddEvent seeds an event
func (m *MockEventRepository) AddEvent(event *domain.Event) {
	cp := *event
	m.events[event.ID] = &cp
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	messages []domain.Message
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{}
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	m.messages = append(m.messages, *message)
	return nil
}

func (m *MockMessageRepository) ListByCouple(ctx context.Context, coupleID string, before time.Time, limit int) ([]domain.Message, error) {
	var out []domain.Message
	for i := len(m.messages) - 1; i >= 0 && len(out) < limit; i-- {
		msg := m.messages[i]
		if msg.CoupleID == coupleID && msg.SentAt.Before(before) {
			out = append(out, msg)
		}
	}
	return out, nil
}

// MockWellnessRepository is a mock implementation of WellnessRepository
type MockWellnessRepository struct {
	entries map[string]*domain.WellnessEntry // keyed by user_id+date
}

func NewMockWellnessRepository() *MockWellnessRepository {
	return &MockWellnessRepository{entries: make(map[string]*domain.WellnessEntry)}
}

func (m *MockWellnessRepository) Upsert(ctx context.Context, entry *domain.WellnessEntry) error {
	cp := *entry
	m.entries[entry.UserID+"|"+entry.EntryDate] = &cp
	return nil
}

func (m *MockWellnessRepository) GetByUserAndDate(ctx context.Context, userID, entryDate string) (*domain.WellnessEntry, error) {
	entry, ok := m.entries[userID+"|"+entryDate]
	if !ok {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

func (m *MockWellnessRepository) ListByCoupleAndRange(ctx context.Context, coupleID, fromDate, toDate string) ([]domain.WellnessEntry, error) {
	var out []domain.WellnessEntry
	for _, e := range m.entries {
		if e.CoupleID == coupleID && e.EntryDate >= fromDate && e.EntryDate <= toDate {
			out = append(out, *e)
		}
	}
	return out, nil
}

// MockFoodRepository is a mock implementation of FoodRepository
type MockFoodRepository struct {
	items     []domain.FoodItem
	searchErr error
	calls     int
}

func NewMockFoodRepository(items ...domain.FoodItem) *MockFoodRepository {
	return &MockFoodRepository{items: items}
}

func (m *MockFoodRepository) Search(ctx context.Context, query string, limit int) ([]domain.FoodItem, error) {
	m.calls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	var out []domain.FoodItem
	for _, it := range m.items {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(query)) {
			out = append(out, it)
		}
	}
	return out, nil
}

// MockFoodCache is a mock implementation of FoodCache
type MockFoodCache struct {
	data   map[string][]domain.FoodItem
	getErr error
	setErr error
}

func NewMockFoodCache() *MockFoodCache {
	return &MockFoodCache{data: make(map[string][]domain.FoodItem)}
}

func (m *MockFoodCache) Get(ctx context.Context, query string, limit int) ([]domain.FoodItem, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	items, ok := m.data[query]
	if !ok {
		return nil, nil
	}
	return items, nil
}

func (m *MockFoodCache) Set(ctx context.Context, query string, limit int, items []domain.FoodItem) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[query] = items
	return nil
}
