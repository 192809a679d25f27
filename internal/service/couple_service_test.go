package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

func newCoupleFixture() (CoupleService, *MockCoupleRepository, *MockUserRepository) {
	coupleRepo := NewMockCoupleRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: "alice", Email: "alice@example.com", Timezone: "UTC", IsActive: true})
	userRepo.AddUser(&domain.User{ID: "bob", Email: "bob@example.com", Timezone: "UTC", IsActive: true})
	return NewCoupleService(coupleRepo, userRepo), coupleRepo, userRepo
}

func TestCoupleService_CreateCouple(t *testing.T) {
	svc, _, userRepo := newCoupleFixture()

	couple, err := svc.CreateCouple(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateCouple() unexpected error: %v", err)
	}
	if couple.Status != domain.CoupleStatusPending {
		t.Errorf("CreateCouple() status = %q, want pending", couple.Status)
	}
	if len(couple.InviteCode) != inviteCodeLength {
		t.Errorf("CreateCouple() invite code %q, want %d chars", couple.InviteCode, inviteCodeLength)
	}
	for _, r := range couple.InviteCode {
		if !strings.ContainsRune(inviteCodeAlphabet, r) {
			t.Errorf("CreateCouple() invite code contains %q outside alphabet", r)
		}
	}

	alice, _ := userRepo.GetByID(context.Background(), "alice")
	if alice.CoupleID != couple.ID {
		t.Errorf("CreateCouple() did not link creator, couple_id = %q", alice.CoupleID)
	}

	if _, err := svc.CreateCouple(context.Background(), "alice"); !errors.Is(err, domain.ErrAlreadyInCouple) {
		t.Errorf("CreateCouple() second call error = %v, want %v", err, domain.ErrAlreadyInCouple)
	}
}

func TestCoupleService_JoinCouple(t *testing.T) {
	tests := []struct {
		name    string
		joiner  string
		code    func(created *domain.Couple) string
		wantErr error
	}{
		{
			name:   "success",
			joiner: "bob",
			code:   func(c *domain.Couple) string { return c.InviteCode },
		},
		{
			name:    "unknown code",
			joiner:  "bob",
			code:    func(c *domain.Couple) string { return "NOPE1234" },
			wantErr: domain.ErrInvalidInviteCode,
		},
		{
			name:    "creator joins own couple",
			joiner:  "alice",
			code:    func(c *domain.Couple) string { return c.InviteCode },
			wantErr: domain.ErrCannotJoinOwnCouple,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, userRepo := newCoupleFixture()
			created, err := svc.CreateCouple(context.Background(), "alice")
			if err != nil {
				t.Fatalf("CreateCouple() unexpected error: %v", err)
			}

			joined, err := svc.JoinCouple(context.Background(), tt.joiner, tt.code(created))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("JoinCouple() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("JoinCouple() unexpected error: %v", err)
			}
			if joined.Status != domain.CoupleStatusActive {
				t.Errorf("JoinCouple() status = %q, want active", joined.Status)
			}
			if joined.PartnerID != tt.joiner {
				t.Errorf("JoinCouple() partner = %q, want %q", joined.PartnerID, tt.joiner)
			}
			if joined.InviteCode != "" {
				t.Error("JoinCouple() left invite code on a paired couple")
			}
			joiner, _ := userRepo.GetByID(context.Background(), tt.joiner)
			if joiner.CoupleID != joined.ID {
				t.Errorf("JoinCouple() did not link joiner, couple_id = %q", joiner.CoupleID)
			}
		})
	}
}

func TestCoupleService_JoinCouple_AlreadyPaired(t *testing.T) {
	svc, coupleRepo, userRepo := newCoupleFixture()
	userRepo.AddUser(&domain.User{ID: "carol", Email: "carol@example.com", Timezone: "UTC", IsActive: true})

	created, err := svc.CreateCouple(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateCouple() unexpected error: %v", err)
	}
	code := created.InviteCode
	if _, err := svc.JoinCouple(context.Background(), "bob", code); err != nil {
		t.Fatalf("JoinCouple() unexpected error: %v", err)
	}

	// Simulate a stale code lookup still hitting the paired couple.
	paired, _ := coupleRepo.GetByID(context.Background(), created.ID)
	paired.InviteCode = code
	paired.Status = domain.CoupleStatusPending
	coupleRepo.AddCouple(paired)

	if _, err := svc.JoinCouple(context.Background(), "carol", code); !errors.Is(err, domain.ErrCoupleAlreadyPaired) {
		t.Errorf("JoinCouple() error = %v, want %v", err, domain.ErrCoupleAlreadyPaired)
	}
}

func TestCoupleService_GetCouple(t *testing.T) {
	svc, _, _ := newCoupleFixture()

	if _, err := svc.GetCouple(context.Background(), "alice"); !errors.Is(err, domain.ErrNotInCouple) {
		t.Errorf("GetCouple() error = %v, want %v", err, domain.ErrNotInCouple)
	}

	created, err := svc.CreateCouple(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateCouple() unexpected error: %v", err)
	}
	got, err := svc.GetCouple(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetCouple() unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetCouple() id = %q, want %q", got.ID, created.ID)
	}
}
