package patient

import (
	"context"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByUsername(ctx context.Context, username string) (*Patient, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}
