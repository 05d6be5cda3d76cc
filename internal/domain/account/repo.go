package account

import (
	"context"
)

type UserRepository interface {
	// Create stores u. A taken username yields apperr.ErrConflict.
	Create(ctx context.Context, u *User) error
	// GetByUsername yields apperr.ErrNotFound when no user matches.
	GetByUsername(ctx context.Context, username string) (*User, error)
}
