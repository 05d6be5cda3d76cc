package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/livercare/livercare/internal/platform/auth"
)

// User maps to the users table. The password digest never leaves the server.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         auth.Role `db:"role" json:"role"`
	Name         *string   `db:"name" json:"name,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RegisterRequest is the JSON body of POST /register.
type RegisterRequest struct {
	Username string    `json:"username" validate:"required,max=64"`
	Password string    `json:"password" validate:"required,max=72"`
	Role     auth.Role `json:"role" validate:"required,oneof=patient doctor lab admin"`
	Name     *string   `json:"name,omitempty"`
}

// LoginRequest is the form body of POST /login.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
