package service

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/dto"
	"github.com/andrewsnewton/couplespace-sub003/internal/repository"
	"github.com/andrewsnewton/couplespace-sub003/internal/timeline"
	"github.com/andrewsnewton/couplespace-sub003/pkg/telemetry"
)

// timelineFetchPadding widens the storage query around the requested
// day so events shifted by timezone offsets are still candidates.
const timelineFetchPadding = 4 * 24 * time.Hour

// EventService defines the interface for event and timeline operations
type EventService interface {
	// CreateEvent creates an event in the user's couple space
	CreateEvent(ctx context.Context, userID string, req *dto.CreateEventRequest) (*domain.Event, error)
	// GetEvent retrieves an event visible to the user
	GetEvent(ctx context.Context, userID, eventID string) (*domain.Event, error)
	// UpdateEvent updates an event owned by the user
	UpdateEvent(ctx context.Context, userID, eventID string, req *dto.UpdateEventRequest) (*domain.Event, error)
	// DeleteEvent deletes an event owned by the user
	DeleteEvent(ctx context.Context, userID, eventID string) error
	// GetTimeline resolves the visible, positioned events for one day
	GetTimeline(ctx context.Context, userID string, req *dto.TimelineRequest) (*dto.TimelineResponse, error)
	// ExportICS renders the couple's upcoming events as an iCalendar feed
	ExportICS(ctx context.Context, userID string) (string, error)
}

// eventService implements EventService
type eventService struct {
	eventRepo  repository.EventRepository
	coupleRepo repository.CoupleRepository
	userRepo   repository.UserRepository
	layoutCfg  timeline.LayoutConfig
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repository.EventRepository,
	coupleRepo repository.CoupleRepository,
	userRepo repository.UserRepository,
	layoutCfg timeline.LayoutConfig,
) EventService {
	if layoutCfg.PixelsPerMinute <= 0 {
		layoutCfg = timeline.DefaultLayoutConfig()
	}
	return &eventService{
		eventRepo:  eventRepo,
		coupleRepo: coupleRepo,
		userRepo:   userRepo,
		layoutCfg:  layoutCfg,
	}
}

// CreateEvent creates an event in the user's couple space
func (s *eventService) CreateEvent(ctx context.Context, userID string, req *dto.CreateEventRequest) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.create")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	couple, err := s.requireCouple(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now()
	event := &domain.Event{
		ID:             uuid.New().String(),
		CoupleID:       couple.ID,
		OwnerID:        userID,
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		SourceTimezone: req.SourceTimezone,
		RepeatRule:     req.RepeatRule,
		Color:          req.Color,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := event.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("event_id", event.ID))
	span.SetStatus(codes.Ok, "")
	return event, nil
}

// GetEvent retrieves an event visible to the user
func (s *eventService) GetEvent(ctx context.Context, userID, eventID string) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.get")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID))

	couple, err := s.requireCouple(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if event == nil || !event.BelongsToCouple(couple.ID) {
		span.SetStatus(codes.Error, "event not found")
		return nil, domain.ErrEventNotFound
	}

	span.SetStatus(codes.Ok, "")
	return event, nil
}

// UpdateEvent updates an event owned by the user
func (s *eventService) UpdateEvent(ctx context.Context, userID, eventID string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.update")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID))

	event, err := s.GetEvent(ctx, userID, eventID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !event.OwnedBy(userID) {
		span.SetStatus(codes.Error, "not event owner")
		return nil, domain.ErrNotEventOwner
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}
	if req.SourceTimezone != nil {
		event.SourceTimezone = *req.SourceTimezone
	}
	if req.RepeatRule != nil {
		event.RepeatRule = *req.RepeatRule
	}
	if req.Color != nil {
		event.Color = *req.Color
	}
	if req.IsCompleted != nil {
		event.IsCompleted = *req.IsCompleted
	}

	if err := event.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return event, nil
}

// DeleteEvent deletes an event owned by the user
func (s *eventService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.event.delete")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID))

	event, err := s.GetEvent(ctx, userID, eventID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if !event.OwnedBy(userID) {
		span.SetStatus(codes.Error, "not event owner")
		return domain.ErrNotEventOwner
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetTimeline resolves the visible, positioned events for one day
func (s *eventService) GetTimeline(ctx context.Context, userID string, req *dto.TimelineRequest) (*dto.TimelineResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.get_timeline")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("date", req.Date),
	)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}

	couple, err := s.requireCouple(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	viewerTZ := req.Timezone
	if viewerTZ == "" {
		viewerTZ = user.Timezone
	}

	day, err := time.Parse(timeline.DateLayout, req.Date)
	if err != nil {
		span.SetStatus(codes.Error, "invalid date")
		return nil, fmt.Errorf("invalid timeline date %q: %w", req.Date, err)
	}

	from := day.Add(-timelineFetchPadding)
	to := day.Add(timelineFetchPadding)

	events, err := s.eventRepo.ListByCouple(ctx, couple.ID, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	recurring, err := s.eventRepo.ListRecurringByCouple(ctx, couple.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	events = mergeRecurring(events, recurring)
	events = timeline.ExpandOccurrences(events, from, to)

	visible := timeline.VisibleEvents(events, timeline.DisplayRequest{
		ViewerID:       userID,
		ViewerTimezone: viewerTZ,
		Date:           req.Date,
		Filter:         timeline.OwnershipFilter(req.Filter),
	})

	loc, err := time.LoadLocation(viewerTZ)
	if err != nil {
		loc = time.UTC
	}
	frames := timeline.Layout(visible, loc, s.layoutCfg)

	span.SetAttributes(attribute.Int("visible_count", len(visible)))
	span.SetStatus(codes.Ok, "")
	return dto.TimelineFromDomain(req.Date, viewerTZ, visible, frames), nil
}

// ExportICS renders the couple's upcoming events as an iCalendar feed
func (s *eventService) ExportICS(ctx context.Context, userID string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.export_ics")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	couple, err := s.requireCouple(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	now := time.Now()
	events, err := s.eventRepo.ListByCouple(ctx, couple.ID, now.AddDate(0, -1, 0), now.AddDate(1, 0, 0))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Bonded//Timeline//EN")

	for i := range events {
		ev := &events[i]
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(now)
		ve.SetStartAt(ev.StartTime)
		ve.SetEndAt(ev.EffectiveEnd())
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.IsRecurring() {
			ve.AddRrule(ev.RepeatRule)
		}
	}

	span.SetAttributes(attribute.Int("event_count", len(events)))
	span.SetStatus(codes.Ok, "")
	return cal.Serialize(), nil
}

func (s *eventService) requireCouple(ctx context.Context, userID string) (*domain.Couple, error) {
	couple, err := s.coupleRepo.GetByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if couple == nil {
		return nil, domain.ErrNotInCouple
	}
	return couple, nil
}

// mergeRecurring appends recurring events not already in the ranged
// result set
func mergeRecurring(events, recurring []domain.Event) []domain.Event {
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		seen[ev.ID] = struct{}{}
	}
	for _, ev := range recurring {
		if _, ok := seen[ev.ID]; !ok {
			events = append(events, ev)
		}
	}
	return events
}
