package doctor

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/livercare/livercare/internal/platform/db"
)

type doctorRepoPG struct{ q db.Querier }

func NewDoctorRepoPG(q db.Querier) DoctorRepository {
	return &doctorRepoPG{q: q}
}

const doctorCols = `id, name, hospital, rating, timing, status, created_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Hospital, &d.Rating, &d.Timing, &d.Status, &d.CreatedAt)
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	err := r.q.QueryRow(ctx, `
		INSERT INTO doctors (id, name, hospital, rating, timing, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		d.ID, d.Name, d.Hospital, d.Rating, d.Timing, d.Status).Scan(&d.CreatedAt)
	return db.TranslateError(err, "doctor")
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := scanDoctor(r.q.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
	if err != nil {
		return nil, db.TranslateError(err, "doctor")
	}
	return d, nil
}

func (r *doctorRepoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+doctorCols+` FROM doctors ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := []*Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
