package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/livercare/livercare/internal/platform/apperr"
)

type contextKey string

const claimKey contextKey = "auth_claim"

// WithClaim returns a copy of ctx carrying claim.
func WithClaim(ctx context.Context, claim Claim) context.Context {
	return context.WithValue(ctx, claimKey, claim)
}

// ClaimFromContext returns the claim placed on ctx by BearerAuth.
func ClaimFromContext(ctx context.Context) (Claim, bool) {
	claim, ok := ctx.Value(claimKey).(Claim)
	return claim, ok
}

// BearerAuth validates the Authorization header and stores the resulting
// claim on the request context. Requests without a header pass through
// unauthenticated so public routes keep working; RequireRole rejects them on
// protected routes. A header that is present but malformed or invalid is
// rejected immediately.
func BearerAuth(tokens *TokenService, logger zerolog.Logger, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			tokenStr, ok := bearerToken(header)
			if !ok {
				return apperr.ErrUnauthenticated
			}

			claim, err := tokens.Validate(tokenStr)
			if err != nil {
				logger.Debug().Err(errorsCause(err)).Msg("bearer token rejected")
				return err
			}

			c.Set("username", claim.Username)
			c.SetRequest(c.Request().WithContext(WithClaim(c.Request().Context(), claim)))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func errorsCause(err error) error {
	if te, ok := err.(*tokenError); ok {
		return te.cause
	}
	return err
}
