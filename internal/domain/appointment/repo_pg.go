package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/livercare/livercare/internal/platform/db"
)

type appointmentRepoPG struct{ q db.Querier }

func NewAppointmentRepoPG(q db.Querier) AppointmentRepository {
	return &appointmentRepoPG{q: q}
}

const apptCols = `id, patient_id, doctor_id, date, status, prescribed, next_date, created_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Status, &a.Prescribed, &a.NextDate, &a.CreatedAt)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	err := r.q.QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, date, status, prescribed, next_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.Status, a.Prescribed, a.NextDate).Scan(&a.CreatedAt)
	return db.TranslateError(err, "appointment")
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(r.q.QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		return nil, db.TranslateError(err, "appointment")
	}
	return a, nil
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID string) ([]*Appointment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+apptCols+` FROM appointments WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *appointmentRepoPG) ListByDoctor(ctx context.Context, doctorID string) ([]*Appointment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+apptCols+` FROM appointments WHERE doctor_id = $1 ORDER BY created_at`, doctorID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *appointmentRepoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+apptCols+` FROM appointments ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func collect(rows pgx.Rows) ([]*Appointment, error) {
	defer rows.Close()
	items := []*Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
