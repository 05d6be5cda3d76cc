package labreport

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/livercare/livercare/internal/platform/db"
)

type labReportRepoPG struct{ q db.Querier }

func NewLabReportRepoPG(q db.Querier) LabReportRepository {
	return &labReportRepoPG{q: q}
}

const reportCols = `id, patient_id, doctor_id, age, sex,
	albumin, bilirubin, alt, ast, alp, inr, platelets, sodium, creatinine,
	ascites, hepatomegaly, spiders, edema,
	stage, bedrest, drugs, prescription, precautions, next_date,
	created_by, created_at`

func scanReport(row pgx.Row) (*LabReport, error) {
	var r LabReport
	err := row.Scan(&r.ID, &r.PatientID, &r.DoctorID, &r.Age, &r.Sex,
		&r.Albumin, &r.Bilirubin, &r.ALT, &r.AST, &r.ALP, &r.INR, &r.Platelets, &r.Sodium, &r.Creatinine,
		&r.Ascites, &r.Hepatomegaly, &r.Spiders, &r.Edema,
		&r.Stage, &r.Bedrest, &r.Drugs, &r.Prescription, &r.Precautions, &r.NextDate,
		&r.CreatedBy, &r.CreatedAt)
	return &r, err
}

func (repo *labReportRepoPG) Create(ctx context.Context, r *LabReport) error {
	r.ID = uuid.New()
	_, err := repo.q.Exec(ctx, `
		INSERT INTO lab_reports (id, patient_id, doctor_id, age, sex,
			albumin, bilirubin, alt, ast, alp, inr, platelets, sodium, creatinine,
			ascites, hepatomegaly, spiders, edema,
			stage, bedrest, drugs, prescription, precautions, next_date,
			created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)`,
		r.ID, r.PatientID, r.DoctorID, r.Age, r.Sex,
		r.Albumin, r.Bilirubin, r.ALT, r.AST, r.ALP, r.INR, r.Platelets, r.Sodium, r.Creatinine,
		r.Ascites, r.Hepatomegaly, r.Spiders, r.Edema,
		r.Stage, r.Bedrest, r.Drugs, r.Prescription, r.Precautions, r.NextDate,
		r.CreatedBy, r.CreatedAt)
	return db.TranslateError(err, "lab report")
}

func (repo *labReportRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabReport, error) {
	r, err := scanReport(repo.q.QueryRow(ctx, `SELECT `+reportCols+` FROM lab_reports WHERE id = $1`, id))
	if err != nil {
		return nil, db.TranslateError(err, "lab report")
	}
	return r, nil
}

func (repo *labReportRepoPG) ListByPatient(ctx context.Context, patientID string) ([]*LabReport, error) {
	rows, err := repo.q.Query(ctx, `SELECT `+reportCols+` FROM lab_reports WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (repo *labReportRepoPG) ListByCreator(ctx context.Context, createdBy string) ([]*LabReport, error) {
	rows, err := repo.q.Query(ctx, `SELECT `+reportCols+` FROM lab_reports WHERE created_by = $1 ORDER BY created_at`, createdBy)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (repo *labReportRepoPG) List(ctx context.Context, limit, offset int) ([]*LabReport, int, error) {
	var total int
	if err := repo.q.QueryRow(ctx, `SELECT COUNT(*) FROM lab_reports`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := repo.q.Query(ctx, `SELECT `+reportCols+` FROM lab_reports ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func collect(rows pgx.Rows) ([]*LabReport, error) {
	defer rows.Close()
	items := []*LabReport{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
