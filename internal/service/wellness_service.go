package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/dto"
	"github.com/andrewsnewton/couplespace-sub003/internal/repository"
	"github.com/andrewsnewton/couplespace-sub003/pkg/logger"
	"github.com/andrewsnewton/couplespace-sub003/pkg/telemetry"
)

const defaultFoodSearchLimit = 20

// WellnessService defines the interface for wellness and food operations
type WellnessService interface {
	// UpsertEntry records a user's metrics for a day
	UpsertEntry(ctx context.Context, userID string, req *dto.UpsertWellnessRequest) (*domain.WellnessEntry, error)
	// GetDay retrieves both partners' entries for a date
	GetDay(ctx context.Context, userID, entryDate string) ([]domain.WellnessEntry, error)
	// SearchFood searches the food catalogue, serving cached results
	// when available
	SearchFood(ctx context.Context, query string, limit int) ([]domain.FoodItem, error)
}

// wellnessService implements WellnessService
type wellnessService struct {
	wellnessRepo repository.WellnessRepository
	foodRepo     repository.FoodRepository
	foodCache    repository.FoodCache
	coupleRepo   repository.CoupleRepository
}

// NewWellnessService creates a new WellnessService
func NewWellnessService(
	wellnessRepo repository.WellnessRepository,
	foodRepo repository.FoodRepository,
	foodCache repository.FoodCache,
	coupleRepo repository.CoupleRepository,
) WellnessService {
	return &wellnessService{
		wellnessRepo: wellnessRepo,
		foodRepo:     foodRepo,
		foodCache:    foodCache,
		coupleRepo:   coupleRepo,
	}
}

// UpsertEntry records a user's metrics for a day
func (s *wellnessService) UpsertEntry(ctx context.Context, userID string, req *dto.UpsertWellnessRequest) (*domain.WellnessEntry, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.wellness.upsert_entry")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("entry_date", req.EntryDate),
	)

	if _, err := time.Parse("2006-01-02", req.EntryDate); err != nil {
		span.SetStatus(codes.Error, "invalid entry date")
		return nil, err
	}

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

	entry := &domain.WellnessEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		CoupleID:     couple.ID,
		EntryDate:    req.EntryDate,
		Steps:        req.Steps,
		SleepMinutes: req.SleepMinutes,
		WaterMl:      req.WaterMl,
		Mood:         req.Mood,
		Calories:     req.Calories,
	}

	if err := s.wellnessRepo.Upsert(ctx, entry); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return entry, nil
}

// GetDay retrieves both partners' entries for a date
func (s *wellnessService) GetDay(ctx context.Context, userID, entryDate string) ([]domain.WellnessEntry, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.wellness.get_day")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("entry_date", entryDate),
	)

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

	entries, err := s.wellnessRepo.ListByCoupleAndRange(ctx, couple.ID, entryDate, entryDate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return entries, nil
}

// SearchFood searches the food catalogue, serving cached results when
// available. Cache failures degrade to a direct catalogue lookup.
func (s *wellnessService) SearchFood(ctx context.Context, query string, limit int) ([]domain.FoodItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.wellness.search_food")
	defer span.End()

	if limit <= 0 {
		limit = defaultFoodSearchLimit
	}
	span.SetAttributes(
		attribute.String("query", query),
		attribute.Int("limit", limit),
	)

	if s.foodCache != nil {
		cached, err := s.foodCache.Get(ctx, query, limit)
		if err != nil {
			logger.Get().Warn("food cache read failed", zap.Error(err))
		} else if cached != nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			span.SetStatus(codes.Ok, "")
			return cached, nil
		}
	}

	items, err := s.foodRepo.Search(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if s.foodCache != nil {
		if err := s.foodCache.Set(ctx, query, limit, items); err != nil {
			logger.Get().Warn("food cache write failed", zap.Error(err))
		}
	}

	span.SetAttributes(attribute.Bool("cache_hit", false))
	span.SetStatus(codes.Ok, "")
	return items, nil
}
