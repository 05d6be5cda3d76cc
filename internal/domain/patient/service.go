package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/livercare/livercare/internal/platform/apperr"
)

type Service struct {
	repo PatientRepository
}

func NewService(repo PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return apperr.InvalidInput("name is required")
	}
	if p.Username == "" {
		return apperr.InvalidInput("username is required")
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// GetPatientByUsername returns the record linked to a patient login.
func (s *Service) GetPatientByUsername(ctx context.Context, username string) (*Patient, error) {
	return s.repo.GetByUsername(ctx, username)
}

// ListPatientsForDoctor returns the patients whose doctorId is doctorID.
func (s *Service) ListPatientsForDoctor(ctx context.Context, doctorID string) ([]*Patient, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}
