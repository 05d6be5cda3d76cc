package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/livercare/livercare/internal/platform/apperr"
)

// DefaultTokenTTL is used when neither the caller nor the configuration
// supplies a lifetime.
const DefaultTokenTTL = 60 * time.Minute

// Claim is the authenticated identity derived from a valid token. It lives
// for a single request.
type Claim struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// TokenClaims is the JWT payload: {sub, role, iat, exp}.
type TokenClaims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// TokenService issues and validates HS256 bearer tokens. It holds no state
// besides the shared secret, the default lifetime and the clock.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service. ttl <= 0 selects DefaultTokenTTL.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the service that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// TTL returns the default token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for subject and role that expires after ttl. A
// non-positive ttl selects the service default.
func (s *TokenService) Issue(subject string, role Role, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("token subject is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks the signature, then expiry, then the presence of subject
// and role. Every failure collapses to apperr.ErrUnauthenticated; the cause
// is kept only for logging.
func (s *TokenService) Validate(tokenStr string) (Claim, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claim{}, unauthenticated(err)
	}
	if claims.Subject == "" {
		return Claim{}, unauthenticated(errors.New("missing sub claim"))
	}
	if !claims.Role.Valid() {
		return Claim{}, unauthenticated(errors.New("missing or unknown role claim"))
	}
	return Claim{Username: claims.Subject, Role: claims.Role}, nil
}

type tokenError struct{ cause error }

func (e *tokenError) Error() string { return apperr.ErrUnauthenticated.Error() }

func (e *tokenError) Unwrap() []error { return []error{apperr.ErrUnauthenticated, e.cause} }

func unauthenticated(cause error) error { return &tokenError{cause: cause} }
