package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/livercare/livercare/internal/platform/apperr"
)

type Service struct {
	repo AppointmentRepository
}

func NewService(repo AppointmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.PatientID == "" {
		return apperr.InvalidInput("patientId is required")
	}
	if a.DoctorID == "" {
		return apperr.InvalidInput("doctorId is required")
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForPatient(ctx context.Context, patientID string) ([]*Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID string) ([]*Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, limit, offset)
}
