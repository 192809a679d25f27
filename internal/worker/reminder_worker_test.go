package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	events  map[string]*domain.Event
	listErr error
	markErr error
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{events: make(map[string]*domain.Event)}
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
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
	return nil, nil
}

func (m *MockEventRepository) ListRecurringByCouple(ctx context.Context, coupleID string) ([]domain.Event, error) {
	return nil, nil
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
	if m.listErr != nil {
		return nil, m.listErr
	}
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
	if m.markErr != nil {
		return m.markErr
	}
	if e, ok := m.events[id]; ok && e.RemindedAt == nil {
		e.RemindedAt = &at
	}
	return nil
}

// MockPublisher records published reminder payloads
type MockPublisher struct {
	published  []ReminderEvent
	keys       []string
	produceErr error
}

func (m *MockPublisher) ProduceJSON(ctx context.Context, topic, key string, payload interface{}, headers map[string]string) error {
	if m.produceErr != nil {
		return m.produceErr
	}
	m.published = append(m.published, payload.(ReminderEvent))
	m.keys = append(m.keys, key)
	return nil
}

func TestReminderWorker_Scan(t *testing.T) {
	repo := NewMockEventRepository()
	now := time.Now()
	past := now.Add(-time.Hour)

	repo.Create(context.Background(), &domain.Event{
		ID: "due", CoupleID: "couple-1", OwnerID: "alice",
		Title:     "Dinner",
		StartTime: now.Add(10 * time.Minute),
	})
	repo.Create(context.Background(), &domain.Event{
		ID: "far-out", CoupleID: "couple-1", OwnerID: "alice",
		Title:     "Trip",
		StartTime: now.Add(48 * time.Hour),
	})
	repo.Create(context.Background(), &domain.Event{
		ID: "already-reminded", CoupleID: "couple-1", OwnerID: "bob",
		Title:      "Lunch",
		StartTime:  now.Add(5 * time.Minute),
		RemindedAt: &past,
	})
	repo.Create(context.Background(), &domain.Event{
		ID: "recurring", CoupleID: "couple-1", OwnerID: "bob",
		Title:      "Walk",
		StartTime:  now.Add(5 * time.Minute),
		RepeatRule: "FREQ=DAILY",
	})

	pub := &MockPublisher{}
	w := NewReminderWorker(repo, pub, &ReminderWorkerConfig{Lookahead: 30 * time.Minute})

	if err := w.Scan(context.Background()); err != nil {
		t.Fatalf("Scan() unexpected error: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("Scan() published %d reminders, want 1", len(pub.published))
	}
	got := pub.published[0]
	if got.EventID != "due" || got.EventType != "event.reminder" {
		t.Errorf("Scan() published %+v", got)
	}
	if pub.keys[0] != "couple-1" {
		t.Errorf("Scan() message key = %q, want couple-1", pub.keys[0])
	}

	marked, _ := repo.GetByID(context.Background(), "due")
	if marked.RemindedAt == nil {
		t.Error("Scan() did not mark the event reminded")
	}

	// A second scan finds nothing new.
	if err := w.Scan(context.Background()); err != nil {
		t.Fatalf("Scan() unexpected error: %v", err)
	}
	if len(pub.published) != 1 {
		t.Errorf("Scan() republished, %d total", len(pub.published))
	}
}

func TestReminderWorker_Scan_PublishFailureKeepsEventDue(t *testing.T) {
	repo := NewMockEventRepository()
	now := time.Now()
	repo.Create(context.Background(), &domain.Event{
		ID: "due", CoupleID: "couple-1", OwnerID: "alice",
		Title:     "Dinner",
		StartTime: now.Add(10 * time.Minute),
	})

	pub := &MockPublisher{produceErr: errors.New("broker unavailable")}
	w := NewReminderWorker(repo, pub, &ReminderWorkerConfig{Lookahead: 30 * time.Minute})

	if err := w.Scan(context.Background()); err == nil {
		t.Fatal("Scan() expected error, got nil")
	}

	ev, _ := repo.GetByID(context.Background(), "due")
	if ev.RemindedAt != nil {
		t.Error("Scan() marked the event reminded despite publish failure")
	}

	// Once the broker recovers the reminder goes out.
	pub.produceErr = nil
	if err := w.Scan(context.Background()); err != nil {
		t.Fatalf("Scan() unexpected error: %v", err)
	}
	if len(pub.published) != 1 {
		t.Errorf("Scan() published %d reminders, want 1", len(pub.published))
	}
}

func TestReminderWorker_Start_InvalidCronSpec(t *testing.T) {
	w := NewReminderWorker(NewMockEventRepository(), &MockPublisher{}, &ReminderWorkerConfig{
		CronSpec: "not a cron spec",
	})
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("Start() expected error, got nil")
	}
}

func TestReminderWorker_Defaults(t *testing.T) {
	w := NewReminderWorker(NewMockEventRepository(), &MockPublisher{}, nil)
	if w.config.CronSpec == "" || w.config.Lookahead <= 0 || w.config.BatchSize <= 0 || w.config.Topic == "" {
		t.Errorf("NewReminderWorker() defaults = %+v", w.config)
	}
}
