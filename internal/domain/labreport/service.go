package labreport

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/livercare/livercare/internal/platform/apperr"
	"github.com/livercare/livercare/internal/platform/auth"
)

type Service struct {
	repo LabReportRepository
	now  func() time.Time
}

func NewService(repo LabReportRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateReport stamps the creation time and, for lab callers, the author
// before storing r.
func (s *Service) CreateReport(ctx context.Context, r *LabReport, by auth.Claim) error {
	if r.PatientID == "" {
		return apperr.InvalidInput("patientId is required")
	}
	r.CreatedAt = s.now().UTC().Truncate(time.Microsecond)
	r.CreatedBy = nil
	if by.Role == auth.RoleLab {
		author := by.Username
		r.CreatedBy = &author
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*LabReport, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForPatient returns the reports whose patientId is the given username.
func (s *Service) ListForPatient(ctx context.Context, patientID string) ([]*LabReport, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// ListByAuthor returns the reports created by the given lab user.
func (s *Service) ListByAuthor(ctx context.Context, username string) ([]*LabReport, error) {
	return s.repo.ListByCreator(ctx, username)
}

func (s *Service) ListReports(ctx context.Context, limit, offset int) ([]*LabReport, int, error) {
	return s.repo.List(ctx, limit, offset)
}
