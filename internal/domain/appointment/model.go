package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointments table. PatientID and DoctorID hold
// usernames, which is how the per-user views match them.
type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  string    `db:"patient_id" json:"patientId"`
	DoctorID   string    `db:"doctor_id" json:"doctorId"`
	Date       string    `db:"date" json:"date"`
	Status     string    `db:"status" json:"status"` // e.g. "Booked", "Completed"
	Prescribed bool      `db:"prescribed" json:"prescribed"`
	NextDate   *string   `db:"next_date" json:"nextDate,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// CreateRequest is the body of POST /appointments.
type CreateRequest struct {
	PatientID  string  `json:"patientId" validate:"required"`
	DoctorID   string  `json:"doctorId" validate:"required"`
	Date       string  `json:"date" validate:"required"`
	Status     string  `json:"status" validate:"required"`
	Prescribed bool    `json:"prescribed"`
	NextDate   *string `json:"nextDate,omitempty"`
}

func (r *CreateRequest) ToAppointment() *Appointment {
	return &Appointment{
		PatientID:  r.PatientID,
		DoctorID:   r.DoctorID,
		Date:       r.Date,
		Status:     r.Status,
		Prescribed: r.Prescribed,
		NextDate:   r.NextDate,
	}
}
