package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/livercare/livercare/internal/platform/apperr"
	"github.com/livercare/livercare/internal/platform/auth"
	"github.com/livercare/livercare/internal/platform/metrics"
	"github.com/livercare/livercare/internal/platform/telemetry"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong
// password alike.
var ErrInvalidCredentials = apperr.New(apperr.ErrUnauthenticated, "invalid credentials")

// dummyHash is compared against when the username is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = auth.HashPassword("livercare-timing-equalizer")

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

type Service struct {
	repo    UserRepository
	tokens  *auth.TokenService
	metrics metrics.Recorder
}

func NewService(repo UserRepository, tokens *auth.TokenService, rec metrics.Recorder) *Service {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{repo: repo, tokens: tokens, metrics: rec}
}

// Register hashes the password and stores a new user.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperr.InvalidInput("username is required")
	}
	if req.Password == "" {
		return nil, apperr.InvalidInput("password is required")
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, apperr.InvalidInput("password must be at most %d bytes", maxPasswordBytes)
	}
	if !req.Role.Valid() {
		return nil, apperr.InvalidInput("unknown role %q", req.Role)
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Username:     username,
		PasswordHash: digest,
		Role:         req.Role,
		Name:         req.Name,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.New(apperr.ErrConflict, "username already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and issues a bearer token carrying the
// stored role.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "account.Login")
	defer span.End()

	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			span.SetStatus(codes.Error, "lookup failed")
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		auth.VerifyPassword(password, dummyHash)
		s.metrics.RecordLogin(metrics.LoginFailure)
		return nil, ErrInvalidCredentials
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		s.metrics.RecordLogin(metrics.LoginFailure)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Username, u.Role, 0)
	if err != nil {
		span.SetStatus(codes.Error, "issue failed")
		return nil, fmt.Errorf("issue token: %w", err)
	}
	span.SetAttributes(attribute.String("user.role", u.Role.String()))
	s.metrics.RecordLogin(metrics.LoginSuccess)
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
