package auth

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/livercare/livercare/internal/platform/apperr"
)

// Authorize permits claim iff its role is in allowed. There is no role
// hierarchy: admin is only permitted where it is listed.
func Authorize(claim Claim, allowed RoleSet) error {
	if allowed.Contains(claim.Role) {
		return nil
	}
	return fmt.Errorf("%w: required role %s", apperr.ErrForbidden, allowed)
}

// RequireRole returns middleware that runs the access gate before the
// handler. Requests that reach it without a claim are unauthenticated.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	allowed := NewRoleSet(roles...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, ok := ClaimFromContext(c.Request().Context())
			if !ok {
				return apperr.ErrUnauthenticated
			}
			if err := Authorize(claim, allowed); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireAuthenticated admits any request carrying a valid claim.
func RequireAuthenticated() echo.MiddlewareFunc {
	return RequireRole(AllRoles...)
}
