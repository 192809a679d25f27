package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/dto"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	users    map[string]*domain.User // by email
	sessions map[string]string       // refresh token -> email
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		users:    make(map[string]*domain.User),
		sessions: make(map[string]string),
	}
}

func (m *MockAuthService) authResponse(user *domain.User) *dto.AuthResponse {
	refresh := "refresh-" + user.ID
	m.sessions[refresh] = user.Email
	return &dto.AuthResponse{
		AccessToken:  "access-" + user.ID,
		RefreshToken: refresh,
		ExpiresIn:    900,
		User:         *dto.UserFromDomain(user),
	}
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, ok := m.users[req.Email]; ok {
		return nil, domain.ErrUserAlreadyExists
	}
	user := &domain.User{
		ID:        "user-" + req.Name,
		Email:     req.Email,
		Name:      req.Name,
		Timezone:  "UTC",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	m.users[req.Email] = user
	return m.authResponse(user), nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest, userAgent, ip string) (*dto.AuthResponse, error) {
	user, ok := m.users[req.Email]
	if !ok || req.Password != "correct-password" {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return m.authResponse(user), nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	email, ok := m.sessions[refreshToken]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	delete(m.sessions, refreshToken)
	return m.authResponse(m.users[email]), nil
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	delete(m.sessions, refreshToken)
	return nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	for _, u := range m.users {
		if token == "access-"+u.ID {
			return &domain.Claims{UserID: u.ID, Email: u.Email, CoupleID: u.CoupleID}, nil
		}
	}
	return nil, domain.ErrInvalidToken
}

func (m *MockAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := m.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Timezone != "" {
		user.Timezone = req.Timezone
	}
	return user, nil
}

func setupAuthRouter(h *AuthHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.RefreshToken)
	router.POST("/auth/logout", h.Logout)

	me := router.Group("/", authAs(userID))
	me.GET("/auth/me", h.Me)
	me.PUT("/auth/me", h.UpdateMe)

	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		seed       bool
		wantStatus int
	}{
		{
			name:       "success",
			body:       dto.RegisterRequest{Email: "alice@example.com", Password: "hunter2hunter2", Name: "Alice"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			body:       dto.RegisterRequest{Email: "not-an-email", Password: "hunter2hunter2", Name: "Alice"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       dto.RegisterRequest{Email: "alice@example.com", Password: "short", Name: "Alice"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate email",
			body:       dto.RegisterRequest{Email: "alice@example.com", Password: "hunter2hunter2", Name: "Alice"},
			seed:       true,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockAuthService()
			handler := NewAuthHandler(mockSvc)
			router := setupAuthRouter(handler, "")

			if tt.seed {
				if resp := postJSON(router, "/auth/register", tt.body); resp.Code != http.StatusCreated {
					t.Fatalf("seed register failed with %d", resp.Code)
				}
			}

			resp := postJSON(router, "/auth/register", tt.body)
			if resp.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	mockSvc := NewMockAuthService()
	handler := NewAuthHandler(mockSvc)
	router := setupAuthRouter(handler, "")
	postJSON(router, "/auth/register", dto.RegisterRequest{
		Email: "alice@example.com", Password: "correct-password", Name: "Alice",
	})

	tests := []struct {
		name       string
		body       dto.LoginRequest
		wantStatus int
	}{
		{name: "success", body: dto.LoginRequest{Email: "alice@example.com", Password: "correct-password"}, wantStatus: http.StatusOK},
		{name: "wrong password", body: dto.LoginRequest{Email: "alice@example.com", Password: "wrong"}, wantStatus: http.StatusUnauthorized},
		{name: "unknown email", body: dto.LoginRequest{Email: "ghost@example.com", Password: "correct-password"}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(router, "/auth/login", tt.body)
			if resp.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, resp.Code)
			}
		})
	}
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	mockSvc := NewMockAuthService()
	handler := NewAuthHandler(mockSvc)
	router := setupAuthRouter(handler, "")

	resp := postJSON(router, "/auth/register", dto.RegisterRequest{
		Email: "alice@example.com", Password: "correct-password", Name: "Alice",
	})
	var registered struct {
		Data dto.AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &registered); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	resp = postJSON(router, "/auth/refresh", dto.RefreshRequest{RefreshToken: registered.Data.RefreshToken})
	if resp.Code != http.StatusOK {
		t.Errorf("refresh expected status %d, got %d", http.StatusOK, resp.Code)
	}

	// The rotated-out token no longer refreshes.
	resp = postJSON(router, "/auth/refresh", dto.RefreshRequest{RefreshToken: registered.Data.RefreshToken})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("stale refresh expected status %d, got %d", http.StatusUnauthorized, resp.Code)
	}

	resp = postJSON(router, "/auth/logout", dto.RefreshRequest{RefreshToken: "refresh-user-Alice"})
	if resp.Code != http.StatusOK {
		t.Errorf("logout expected status %d, got %d", http.StatusOK, resp.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	mockSvc := NewMockAuthService()
	handler := NewAuthHandler(mockSvc)

	router := setupAuthRouter(handler, "user-Alice")
	postJSON(router, "/auth/register", dto.RegisterRequest{
		Email: "alice@example.com", Password: "correct-password", Name: "Alice",
	})

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}

	var body struct {
		Data dto.UserResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.Email != "alice@example.com" {
		t.Errorf("me email = %q", body.Data.Email)
	}

	ghostRouter := setupAuthRouter(handler, "ghost")
	req, _ = http.NewRequest(http.MethodGet, "/auth/me", nil)
	resp = httptest.NewRecorder()
	ghostRouter.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, resp.Code)
	}
}
