package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/livercare/livercare/internal/platform/db"
)

type patientRepoPG struct{ q db.Querier }

func NewPatientRepoPG(q db.Querier) PatientRepository {
	return &patientRepoPG{q: q}
}

const patientCols = `id, name, username, age, gender, contact, doctor_id, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Username, &p.Age, &p.Gender, &p.Contact, &p.DoctorID, &p.CreatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := r.q.QueryRow(ctx, `
		INSERT INTO patients (id, name, username, age, gender, contact, doctor_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		p.ID, p.Name, p.Username, p.Age, p.Gender, p.Contact, p.DoctorID).Scan(&p.CreatedAt)
	return db.TranslateError(err, "patient")
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.q.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if err != nil {
		return nil, db.TranslateError(err, "patient")
	}
	return p, nil
}

func (r *patientRepoPG) GetByUsername(ctx context.Context, username string) (*Patient, error) {
	p, err := scanPatient(r.q.QueryRow(ctx, `
		SELECT `+patientCols+` FROM patients WHERE username = $1
		ORDER BY created_at LIMIT 1`, username))
	if err != nil {
		return nil, db.TranslateError(err, "patient")
	}
	return p, nil
}

func (r *patientRepoPG) ListByDoctor(ctx context.Context, doctorID string) ([]*Patient, error) {
	rows, err := r.q.Query(ctx, `SELECT `+patientCols+` FROM patients WHERE doctor_id = $1 ORDER BY created_at`, doctorID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func collect(rows pgx.Rows) ([]*Patient, error) {
	defer rows.Close()
	items := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
