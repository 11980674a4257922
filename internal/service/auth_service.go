package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/store"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService exchanges an identity-provider access token for an API
// session. Passwords never touch this service; the provider owns them.
type AuthService interface {
	Login(ctx context.Context, providerToken string) (*LoginResponse, error)
	Logout(ctx context.Context, sessionToken string) error
	ResolveSession(ctx context.Context, sessionToken string) (*domain.Session, error)
}

type authService struct {
	usersRepo  repository.UsersRepository
	sessions   store.KV
	httpClient *resty.Client
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthService(usersRepo repository.UsersRepository, sessions store.KV, userinfoURL string, sessionTTL time.Duration, logger *zap.Logger) AuthService {
	client := resty.New().
		SetBaseURL(userinfoURL).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json")

	return &authService{
		usersRepo:  usersRepo,
		sessions:   sessions,
		httpClient: client,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// providerUserinfo subset of the provider's userinfo response we need
type providerUserinfo struct {
	Sub   string `json:"sub"`
	ID    string `json:"id"` // some providers use id instead of sub
	Email string `json:"email"`
}

// LoginResponse session token plus the resolved account
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

func (s *authService) Login(ctx context.Context, providerToken string) (*LoginResponse, error) {
	if providerToken == "" {
		return nil, fmt.Errorf("missing provider token")
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+providerToken).
		Get("")
	if err != nil {
		s.logger.Error("Userinfo request failed", zap.Error(err))
		return nil, fmt.Errorf("identity provider unavailable: %w", err)
	}
	if resp.IsError() {
		s.logger.Warn("Userinfo request rejected", zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("invalid provider token")
	}

	var info providerUserinfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	subject := info.Sub
	if subject == "" {
		subject = info.ID
	}
	if subject == "" {
		return nil, fmt.Errorf("userinfo response has no subject")
	}

	user, err := s.usersRepo.GetUserByProviderSubject(ctx, subject)
	if err != nil {
		if err == repository.ErrUserNotFound {
			s.logger.Warn("Login for unknown provider subject",
				zap.String("subject", subject),
				zap.String("email", info.Email),
			)
			return nil, fmt.Errorf("no account for this login")
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user.Status != "active" {
		return nil, fmt.Errorf("account is disabled")
	}

	session := &domain.Session{
		Token:     uuid.New().String(),
		UserID:    user.UserID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.sessions.Set(ctx, sessionKey(session.Token), string(payload), s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.UserID),
		zap.String("company_id", user.CompanyID),
		zap.String("role", user.Role),
	)
	return &LoginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return s.sessions.Del(ctx, sessionKey(sessionToken))
}

func (s *authService) ResolveSession(ctx context.Context, sessionToken string) (*domain.Session, error) {
	if sessionToken == "" {
		return nil, fmt.Errorf("missing session token")
	}
	payload, err := s.sessions.Get(ctx, sessionKey(sessionToken))
	if err != nil {
		if err == store.ErrMiss {
			return nil, fmt.Errorf("session expired")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Del(ctx, sessionKey(sessionToken))
		return nil, fmt.Errorf("session expired")
	}
	return &session, nil
}

func sessionKey(token string) string {
	return "session:" + token
}
