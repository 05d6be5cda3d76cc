package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/livercare/livercare/internal/platform/apperr"
)

type Service struct {
	repo DoctorRepository
}

func NewService(repo DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return apperr.InvalidInput("name is required")
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.List(ctx, limit, offset)
}
