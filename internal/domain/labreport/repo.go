package labreport

import (
	"context"

	"github.com/google/uuid"
)

type LabReportRepository interface {
	Create(ctx context.Context, r *LabReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabReport, error)
	ListByPatient(ctx context.Context, patientID string) ([]*LabReport, error)
	ListByCreator(ctx context.Context, createdBy string) ([]*LabReport, error)
	List(ctx context.Context, limit, offset int) ([]*LabReport, int, error)
}
