package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/repository"
	"github.com/andrewsnewton/couplespace-sub003/pkg/telemetry"
)

const defaultHistoryLimit = 50

// ChatService defines the interface for couple chat operations
type ChatService interface {
	// SendMessage stores a message in the couple's conversation
	SendMessage(ctx context.Context, userID, body string) (*domain.Message, error)
	// GetHistory retrieves messages before a cursor, newest first
	GetHistory(ctx context.Context, userID string, before time.Time, limit int) ([]domain.Message, error)
}

// chatService implements ChatService
type chatService struct {
	messageRepo repository.MessageRepository
	coupleRepo  repository.CoupleRepository
}

// NewChatService creates a new ChatService
func NewChatService(messageRepo repository.MessageRepository, coupleRepo repository.CoupleRepository) ChatService {
	return &chatService{
		messageRepo: messageRepo,
		coupleRepo:  coupleRepo,
	}
}

// SendMessage stores a message in the couple's conversation
func (s *chatService) SendMessage(ctx context.Context, userID, body string) (*domain.Message, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.chat.send_message")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	couple, err := s.coupleRepo.GetByMember(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if couple == nil {
		span.SetStatus(codes.Error, "not in couple")
		return nil, domain.ErrNotInCouple
	}

	now := time.Now()
	message := &domain.Message{
		ID:        uuid.New().String(),
		CoupleID:  couple.ID,
		SenderID:  userID,
		Body:      body,
		SentAt:    now,
		CreatedAt: now,
	}

	if err := message.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("message_id", message.ID))
	span.SetStatus(codes.Ok, "")
	return message, nil
}

// GetHistory retrieves messages before a cursor, newest first
func (s *chatService) GetHistory(ctx context.Context, userID string, before time.Time, limit int) ([]domain.Message, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.chat.get_history")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	couple, err := s.coupleRepo.GetByMember(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if couple == nil {
		span.SetStatus(codes.Error, "not in couple")
		return nil, domain.ErrNotInCouple
	}

	if before.IsZero() {
		before = time.Now()
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	messages, err := s.messageRepo.ListByCouple(ctx, couple.ID, before, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("message_count", len(messages)))
	span.SetStatus(codes.Ok, "")
	return messages, nil
}
