package labreport

import (
	"time"

	"github.com/google/uuid"
)

// LabReport maps to the lab_reports table. The follow-up fields are only
// filled on reports after the first.
type LabReport struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PatientID    string    `db:"patient_id" json:"patientId"`
	DoctorID     string    `db:"doctor_id" json:"doctorId"`
	Age          int       `db:"age" json:"age"`
	Sex          string    `db:"sex" json:"sex"`
	Albumin      float64   `db:"albumin" json:"albumin"`
	Bilirubin    float64   `db:"bilirubin" json:"bilirubin"`
	ALT          float64   `db:"alt" json:"alt"`
	AST          float64   `db:"ast" json:"ast"`
	ALP          float64   `db:"alp" json:"alp"`
	INR          float64   `db:"inr" json:"inr"`
	Platelets    float64   `db:"platelets" json:"platelets"`
	Sodium       float64   `db:"sodium" json:"sodium"`
	Creatinine   float64   `db:"creatinine" json:"creatinine"`
	Ascites      string    `db:"ascites" json:"ascites"`
	Hepatomegaly string    `db:"hepatomegaly" json:"hepatomegaly"`
	Spiders      string    `db:"spiders" json:"spiders"`
	Edema        string    `db:"edema" json:"edema"`
	Stage        *string   `db:"stage" json:"stage,omitempty"`
	Bedrest      *string   `db:"bedrest" json:"bedrest,omitempty"`
	Drugs        *string   `db:"drugs" json:"drugs,omitempty"`
	Prescription *string   `db:"prescription" json:"prescription,omitempty"`
	Precautions  *string   `db:"precautions" json:"precautions,omitempty"`
	NextDate     *string   `db:"next_date" json:"nextDate,omitempty"`
	CreatedBy    *string   `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// CreateRequest is the body of POST /labreports. Server-set fields are not
// accepted from the client.
type CreateRequest struct {
	PatientID    string   `json:"patientId" validate:"required"`
	DoctorID     string   `json:"doctorId" validate:"required"`
	Age          *int     `json:"age" validate:"required"`
	Sex          string   `json:"sex" validate:"required"`
	Albumin      *float64 `json:"albumin" validate:"required"`
	Bilirubin    *float64 `json:"bilirubin" validate:"required"`
	ALT          *float64 `json:"alt" validate:"required"`
	AST          *float64 `json:"ast" validate:"required"`
	ALP          *float64 `json:"alp" validate:"required"`
	INR          *float64 `json:"inr" validate:"required"`
	Platelets    *float64 `json:"platelets" validate:"required"`
	Sodium       *float64 `json:"sodium" validate:"required"`
	Creatinine   *float64 `json:"creatinine" validate:"required"`
	Ascites      string   `json:"ascites" validate:"required"`
	Hepatomegaly string   `json:"hepatomegaly" validate:"required"`
	Spiders      string   `json:"spiders" validate:"required"`
	Edema        string   `json:"edema" validate:"required"`
	Stage        *string  `json:"stage,omitempty"`
	Bedrest      *string  `json:"bedrest,omitempty"`
	Drugs        *string  `json:"drugs,omitempty"`
	Prescription *string  `json:"prescription,omitempty"`
	Precautions  *string  `json:"precautions,omitempty"`
	NextDate     *string  `json:"nextDate,omitempty"`
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func (r *CreateRequest) ToLabReport() *LabReport {
	lr := &LabReport{
		PatientID:    r.PatientID,
		DoctorID:     r.DoctorID,
		Sex:          r.Sex,
		Albumin:      deref(r.Albumin),
		Bilirubin:    deref(r.Bilirubin),
		ALT:          deref(r.ALT),
		AST:          deref(r.AST),
		ALP:          deref(r.ALP),
		INR:          deref(r.INR),
		Platelets:    deref(r.Platelets),
		Sodium:       deref(r.Sodium),
		Creatinine:   deref(r.Creatinine),
		Ascites:      r.Ascites,
		Hepatomegaly: r.Hepatomegaly,
		Spiders:      r.Spiders,
		Edema:        r.Edema,
		Stage:        r.Stage,
		Bedrest:      r.Bedrest,
		Drugs:        r.Drugs,
		Prescription: r.Prescription,
		Precautions:  r.Precautions,
		NextDate:     r.NextDate,
	}
	if r.Age != nil {
		lr.Age = *r.Age
	}
	return lr
}
