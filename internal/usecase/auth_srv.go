package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/data/repository"
	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/dto/response"
	"smartride-portal/internal/gateway"
	"smartride-portal/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRoleMismatch is returned when a login made on one role's portal
// authenticates a user of another role.
var ErrRoleMismatch = userError("Unauthorized role")

// LogoutHook releases per-session state when a session ends.
type LogoutHook func(token uuid.UUID)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.SessionResponse, *entity.Session, error)
	Register(ctx context.Context, req *request.RegisterRequest) (string, error)
	Logout(ctx context.Context, token uuid.UUID) error
	Restore(ctx context.Context, token uuid.UUID) (*entity.Session, error)
	OnLogout(hook LogoutHook)
	CleanExpired(ctx context.Context)
}

type authService struct {
	repo    *repository.Repository
	gateway *gateway.Client
	config  *utils.Config
	log     *zap.Logger
	now     func() time.Time

	mu    sync.RWMutex
	hooks []LogoutHook
}

func NewAuthService(
	repo *repository.Repository,
	gw *gateway.Client,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		gateway: gw,
		config:  config,
		log:     log.With(zap.String("service", "auth")),
		now:     time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.SessionResponse, *entity.Session, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Authenticate against the backend
	var (
		data *gateway.LoginResponse
		err  error
	)
	if req.Portal == entity.RoleAdmin {
		username := req.Username
		if username == "" {
			username = req.Email
		}
		data, err = s.gateway.AdminLogin(ctx, username, req.Password)
	} else {
		data, err = s.gateway.Login(ctx, req.Email, req.Password)
	}
	if err != nil {
		s.log.Warn("Backend rejected login",
			zap.String("portal", string(req.Portal)),
			zap.Error(err))
		return nil, nil, err
	}

	// 3. A new login replaces whatever this browser was signed in as
	if req.Previous != nil {
		if err := s.Logout(ctx, *req.Previous); err != nil {
			s.log.Warn("Failed to revoke previous session", zap.Error(err))
		}
	}

	// 4. Normalise what the backend told us
	role, ok := entity.ParseRole(data.Role)
	if !ok {
		role = req.Portal
	}
	if role != req.Portal {
		s.log.Warn("Login on wrong portal",
			zap.String("portal", string(req.Portal)),
			zap.String("role", string(role)))
		return nil, nil, ErrRoleMismatch
	}

	email := data.Email
	if email == "" {
		email = req.Email
	}

	// 5. Store the session
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Token:        uuid.New(),
		Role:         role,
		Name:         data.Name,
		Email:        email,
		BackendToken: data.Token,
		UserAgent:    req.UserAgent,
		IPAddress:    req.IPAddress,
		ExpiresAt:    s.sessionExpiry(data.Token, now),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("role", string(role)),
		zap.String("email", email))

	resp := response.SessionToResponse(session, now)
	return &resp, session, nil
}

// sessionExpiry is the configured lifetime, cut short by the backend
// token's own exp claim when it has one.
func (s *authService) sessionExpiry(backendToken string, now time.Time) time.Time {
	expires := now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour)

	if exp, ok := tokenExpiry(backendToken); ok && exp.Before(expires) {
		return exp
	}
	return expires
}

// tokenExpiry reads the exp claim without verifying the signature; the
// portal does not hold the backend's signing key.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return "", fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	payload := gateway.RegisterPayload{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Phone:    req.Phone,
		Role:     string(req.Role),
	}
	if req.Role == entity.RoleDriver {
		payload.VehicleModel = req.VehicleModel
		payload.LicensePlate = req.LicensePlate
		payload.Capacity = req.Capacity
	}

	msg, err := s.gateway.Register(ctx, payload)
	if err != nil {
		s.log.Warn("Registration failed", zap.Error(err), zap.String("email", payload.Email))
		return "", err
	}

	s.log.Info("User registered",
		zap.String("role", payload.Role),
		zap.String("email", payload.Email))

	if msg == "" {
		msg = "registered"
	}
	return msg, nil
}

// Logout ends the portal session. It never calls the backend and succeeds
// even when the session is already gone.
func (s *authService) Logout(ctx context.Context, token uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to logout")
	}

	s.mu.RLock()
	hooks := append([]LogoutHook(nil), s.hooks...)
	s.mu.RUnlock()

	for _, hook := range hooks {
		hook(token)
	}

	s.log.Info("User logged out")
	return nil
}

// Restore returns the live session for token, or nil when there is none.
func (s *authService) Restore(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.IsLoggedIn(s.now()) {
		return nil, nil
	}
	return session, nil
}

func (s *authService) OnLogout(hook LogoutHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

func (s *authService) CleanExpired(ctx context.Context) {
	n, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		s.log.Error("Session cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("Removed old sessions", zap.Int64("count", n))
	}
}
