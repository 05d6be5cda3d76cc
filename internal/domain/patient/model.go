package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Username  string    `db:"username" json:"username"`
	Age       int       `db:"age" json:"age"`
	Gender    string    `db:"gender" json:"gender"`
	Contact   string    `db:"contact" json:"contact"`
	DoctorID  *string   `db:"doctor_id" json:"doctorId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CreateRequest is the body of POST /patients.
type CreateRequest struct {
	Name     string  `json:"name" validate:"required"`
	Username string  `json:"username" validate:"required"`
	Age      *int    `json:"age" validate:"required"`
	Gender   string  `json:"gender" validate:"required"`
	Contact  string  `json:"contact" validate:"required"`
	DoctorID *string `json:"doctorId,omitempty"`
}

func (r *CreateRequest) ToPatient() *Patient {
	p := &Patient{
		Name:     r.Name,
		Username: r.Username,
		Gender:   r.Gender,
		Contact:  r.Contact,
		DoctorID: r.DoctorID,
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	return p
}
