package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/livercare/livercare/internal/platform/db"
)

type userRepoPG struct{ q db.Querier }

func NewUserRepoPG(q db.Querier) UserRepository {
	return &userRepoPG{q: q}
}

const userCols = `id, username, password_hash, role, name, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Name, &u.CreatedAt)
	return &u, err
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	err := r.q.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash, role, name)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.Name).Scan(&u.CreatedAt)
	return db.TranslateError(err, "user")
}

func (r *userRepoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, db.TranslateError(err, "user")
	}
	return u, nil
}
