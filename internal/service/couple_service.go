package service

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/repository"
	"github.com/andrewsnewton/couplespace-sub003/pkg/telemetry"
)

const inviteCodeLength = 8

// Unambiguous alphabet for invite codes typed from one phone to another.
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CoupleService defines the interface for pairing operations
type CoupleService interface {
	// CreateCouple creates a pending couple and returns its invite code
	CreateCouple(ctx context.Context, creatorID string) (*domain.Couple, error)
	// JoinCouple pairs the user into a pending couple via invite code
	JoinCouple(ctx context.Context, userID, inviteCode string) (*domain.Couple, error)
	// GetCouple retrieves the couple a user belongs to
	GetCouple(ctx context.Context, userID string) (*domain.Couple, error)
}

// coupleService implements CoupleService
type coupleService struct {
	coupleRepo repository.CoupleRepository
	userRepo   repository.UserRepository
}

// NewCoupleService creates a new CoupleService
func NewCoupleService(coupleRepo repository.CoupleRepository, userRepo repository.UserRepository) CoupleService {
	return &coupleService{
		coupleRepo: coupleRepo,
		userRepo:   userRepo,
	}
}

// CreateCouple creates a pending couple and returns its invite code
func (s *coupleService) CreateCouple(ctx context.Context, creatorID string) (*domain.Couple, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.couple.create")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", creatorID))

	existing, err := s.coupleRepo.GetByMember(ctx, creatorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if existing != nil {
		span.SetStatus(codes.Error, "already in couple")
		return nil, domain.ErrAlreadyInCouple
	}

	code, err := generateInviteCode()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now()
	couple := &domain.Couple{
		ID:         uuid.New().String(),
		CreatorID:  creatorID,
		InviteCode: code,
		Status:     domain.CoupleStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.coupleRepo.Create(ctx, couple); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.setUserCouple(ctx, creatorID, couple.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("couple_id", couple.ID))
	span.SetStatus(codes.Ok, "")
	return couple, nil
}

// JoinCouple pairs the user into a pending couple via invite code
func (s *coupleService) JoinCouple(ctx context.Context, userID, inviteCode string) (*domain.Couple, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.couple.join")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	existing, err := s.coupleRepo.GetByMember(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if existing != nil {
		span.SetStatus(codes.Error, "already in couple")
		return nil, domain.ErrAlreadyInCouple
	}

	couple, err := s.coupleRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if couple == nil {
		span.SetStatus(codes.Error, "invalid invite code")
		return nil, domain.ErrInvalidInviteCode
	}
	if couple.CreatorID == userID {
		span.SetStatus(codes.Error, "cannot join own couple")
		return nil, domain.ErrCannotJoinOwnCouple
	}
	if !couple.CanJoin(userID) {
		span.SetStatus(codes.Error, "couple already paired")
		return nil, domain.ErrCoupleAlreadyPaired
	}

	couple.PartnerID = userID
	couple.Status = domain.CoupleStatusActive
	couple.InviteCode = ""

	if err := s.coupleRepo.Update(ctx, couple); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.setUserCouple(ctx, userID, couple.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("couple_id", couple.ID))
	span.SetStatus(codes.Ok, "")
	return couple, nil
}

// GetCouple retrieves the couple a user belongs to
func (s *coupleService) GetCouple(ctx context.Context, userID string) (*domain.Couple, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.couple.get")
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

	span.SetStatus(codes.Ok, "")
	return couple, nil
}

func (s *coupleService) setUserCouple(ctx context.Context, userID, coupleID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.CoupleID = coupleID
	return s.userRepo.Update(ctx, user)
}

func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, inviteCodeLength)
	for i, b := range buf {
		code[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(code), nil
}
