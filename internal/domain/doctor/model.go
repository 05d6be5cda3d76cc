package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctors table.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Hospital  string    `db:"hospital" json:"hospital"`
	Rating    float64   `db:"rating" json:"rating"`
	Timing    string    `db:"timing" json:"timing"`
	Status    string    `db:"status" json:"status"` // e.g. "Available", "Unavailable"
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CreateRequest is the body of POST /doctors.
type CreateRequest struct {
	Name     string   `json:"name" validate:"required"`
	Hospital string   `json:"hospital" validate:"required"`
	Rating   *float64 `json:"rating" validate:"required"`
	Timing   string   `json:"timing" validate:"required"`
	Status   string   `json:"status" validate:"required"`
}

func (r *CreateRequest) ToDoctor() *Doctor {
	d := &Doctor{
		Name:     r.Name,
		Hospital: r.Hospital,
		Timing:   r.Timing,
		Status:   r.Status,
	}
	if r.Rating != nil {
		d.Rating = *r.Rating
	}
	return d
}
