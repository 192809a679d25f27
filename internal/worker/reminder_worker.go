package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/repository"
	"github.com/andrewsnewton/couplespace-sub003/pkg/logger"
)

// ReminderEvent is the payload published for each due event
type ReminderEvent struct {
	EventType  string    `json:"event_type"`
	EventID    string    `json:"event_id"`
	CoupleID   string    `json:"couple_id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	RemindedAt time.Time `json:"reminded_at"`
}

// ReminderWorkerConfig contains configuration for the reminder worker
type ReminderWorkerConfig struct {
	// CronSpec is the scan schedule, standard 5-field cron syntax
	CronSpec string
	// Lookahead is how far ahead of start time a reminder fires
	Lookahead time.Duration
	// BatchSize bounds a single scan
	BatchSize int
	// Topic is the Kafka topic reminders are published to
	Topic string
}

// ReminderPublisher publishes reminder payloads, satisfied by
// kafka.Producer
type ReminderPublisher interface {
	ProduceJSON(ctx context.Context, topic, key string, payload interface{}, headers map[string]string) error
}

// ReminderWorker periodically scans for upcoming events and publishes
// reminder notifications. Delivery is at-least-once: an event is marked
// reminded only after its notification was produced.
type ReminderWorker struct {
	eventRepo repository.EventRepository
	producer  ReminderPublisher
	config    *ReminderWorkerConfig

	cron *cron.Cron
	wg   sync.WaitGroup
	mu   sync.Mutex
}

// NewReminderWorker creates a new reminder worker
func NewReminderWorker(eventRepo repository.EventRepository, producer ReminderPublisher, config *ReminderWorkerConfig) *ReminderWorker {
	if config == nil {
		config = &ReminderWorkerConfig{}
	}
	if config.CronSpec == "" {
		config.CronSpec = "*/5 * * * *"
	}
	if config.Lookahead <= 0 {
		config.Lookahead = 30 * time.Minute
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 200
	}
	if config.Topic == "" {
		config.Topic = "bonded.event-reminders"
	}
	return &ReminderWorker{
		eventRepo: eventRepo,
		producer:  producer,
		config:    config,
	}
}

// Start schedules the periodic scan
func (w *ReminderWorker) Start(ctx context.Context) error {
	log := logger.Get()

	c := cron.New()
	_, err := c.AddFunc(w.config.CronSpec, func() {
		w.wg.Add(1)
		defer w.wg.Done()
		if err := w.Scan(ctx); err != nil {
			log.Error("reminder scan failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder cron spec %q: %w", w.config.CronSpec, err)
	}

	w.mu.Lock()
	w.cron = c
	w.mu.Unlock()

	c.Start()
	log.Info("reminder worker started",
		zap.String("cron", w.config.CronSpec),
		zap.Duration("lookahead", w.config.Lookahead),
	)
	return nil
}

// Stop halts the schedule and waits for an in-flight scan to finish
func (w *ReminderWorker) Stop() {
	w.mu.Lock()
	c := w.cron
	w.cron = nil
	w.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	w.wg.Wait()
	logger.Get().Info("reminder worker stopped")
}

// Scan publishes reminders for events starting within the lookahead
// window
func (w *ReminderWorker) Scan(ctx context.Context) error {
	log := logger.Get()
	now := time.Now()

	events, err := w.eventRepo.ListDueReminders(ctx, now, now.Add(w.config.Lookahead), w.config.BatchSize)
	if err != nil {
		return fmt.Errorf("list due reminders: %w", err)
	}
	if len(events) == 0 {
		return nil
	}

	log.Info("publishing event reminders", zap.Int("count", len(events)))

	var firstErr error
	for i := range events {
		if err := w.remind(ctx, &events[i], now); err != nil {
			log.Error("failed to publish reminder",
				zap.String("event_id", events[i].ID),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (w *ReminderWorker) remind(ctx context.Context, ev *domain.Event, now time.Time) error {
	payload := ReminderEvent{
		EventType:  "event.reminder",
		EventID:    ev.ID,
		CoupleID:   ev.CoupleID,
		OwnerID:    ev.OwnerID,
		Title:      ev.Title,
		StartTime:  ev.StartTime,
		RemindedAt: now,
	}

	// Key by couple so both partners' reminders stay ordered.
	if err := w.producer.ProduceJSON(ctx, w.config.Topic, ev.CoupleID, payload, nil); err != nil {
		return err
	}

	if err := w.eventRepo.MarkReminded(ctx, ev.ID, now); err != nil {
		// The notification went out but the marker write failed, so the
		// next scan may publish a duplicate.
		return fmt.Errorf("mark reminded: %w", err)
	}
	return nil
}
