package main

import (
	"net/http"

	"github.com/livercare/livercare/internal/domain/account"
	"github.com/livercare/livercare/internal/domain/appointment"
	"github.com/livercare/livercare/internal/domain/doctor"
	"github.com/livercare/livercare/internal/domain/labreport"
	"github.com/livercare/livercare/internal/domain/patient"
	"github.com/livercare/livercare/internal/domain/prediction"
	"github.com/livercare/livercare/internal/platform/auth"
	"github.com/livercare/livercare/internal/platform/openapi"
)

func roles(rs ...auth.Role) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.String())
	}
	return out
}

// apiOperations documents every route registered by the domain handlers.
// Keep in step with their RegisterRoutes.
func apiOperations() []openapi.Operation {
	var (
		patientOnly = roles(auth.RolePatient)
		doctorOnly  = roles(auth.RoleDoctor)
		labOnly     = roles(auth.RoleLab)
		everyone    = roles(auth.RoleDoctor, auth.RoleAdmin, auth.RoleLab, auth.RolePatient)
		staff       = roles(auth.RoleAdmin, auth.RoleLab)
		clinicians  = roles(auth.RoleAdmin, auth.RoleDoctor, auth.RoleLab)
		predictors  = roles(auth.RoleDoctor, auth.RoleLab, auth.RoleAdmin)
	)
	return []openapi.Operation{
		{Method: http.MethodPost, Path: "/register", Summary: "Register a user", Tag: "auth",
			Request: account.RegisterRequest{}, Response: account.User{}, Status: http.StatusCreated},
		{Method: http.MethodPost, Path: "/login", Summary: "Exchange credentials for a bearer token", Tag: "auth",
			Form: account.LoginRequest{}, Response: account.TokenResponse{}},
		{Method: http.MethodGet, Path: "/protected-test", Summary: "Echo the authenticated identity", Tag: "auth",
			Roles: []string{}},

		{Method: http.MethodGet, Path: "/patients/me", Summary: "Own patient record", Tag: "patients",
			Roles: patientOnly, Response: patient.Patient{}},
		{Method: http.MethodGet, Path: "/patients/my", Summary: "Patients assigned to the calling doctor", Tag: "patients",
			Roles: doctorOnly, Response: patient.Patient{}, List: true},
		{Method: http.MethodGet, Path: "/patients", Summary: "List patients", Tag: "patients",
			Roles: everyone, Response: patient.Patient{}, List: true},
		{Method: http.MethodGet, Path: "/patients/:id", Summary: "Get a patient", Tag: "patients",
			Roles: everyone, Response: patient.Patient{}},
		{Method: http.MethodPost, Path: "/patients", Summary: "Create a patient", Tag: "patients",
			Roles: everyone, Request: patient.CreateRequest{}, Response: patient.Patient{}, Status: http.StatusCreated},

		{Method: http.MethodGet, Path: "/doctors", Summary: "List doctors", Tag: "doctors",
			Roles: staff, Response: doctor.Doctor{}, List: true},
		{Method: http.MethodGet, Path: "/doctors/:id", Summary: "Get a doctor", Tag: "doctors",
			Roles: staff, Response: doctor.Doctor{}},
		{Method: http.MethodPost, Path: "/doctors", Summary: "Create a doctor", Tag: "doctors",
			Roles: roles(auth.RoleAdmin), Request: doctor.CreateRequest{}, Response: doctor.Doctor{}, Status: http.StatusCreated},

		{Method: http.MethodGet, Path: "/appointments/me", Summary: "Own appointments", Tag: "appointments",
			Roles: patientOnly, Response: appointment.Appointment{}, List: true},
		{Method: http.MethodGet, Path: "/appointments/my", Summary: "Appointments of the calling doctor", Tag: "appointments",
			Roles: doctorOnly, Response: appointment.Appointment{}, List: true},
		{Method: http.MethodGet, Path: "/appointments", Summary: "List appointments", Tag: "appointments",
			Roles: clinicians, Response: appointment.Appointment{}, List: true},
		{Method: http.MethodGet, Path: "/appointments/:id", Summary: "Get an appointment", Tag: "appointments",
			Roles: clinicians, Response: appointment.Appointment{}},
		{Method: http.MethodPost, Path: "/appointments", Summary: "Create an appointment", Tag: "appointments",
			Roles: roles(auth.RoleAdmin, auth.RoleDoctor), Request: appointment.CreateRequest{},
			Response: appointment.Appointment{}, Status: http.StatusCreated},

		{Method: http.MethodGet, Path: "/labreports/me", Summary: "Own lab reports", Tag: "labreports",
			Roles: patientOnly, Response: labreport.LabReport{}, List: true},
		{Method: http.MethodGet, Path: "/labreports/my", Summary: "Reports created by the calling lab", Tag: "labreports",
			Roles: labOnly, Response: labreport.LabReport{}, List: true},
		{Method: http.MethodGet, Path: "/labreports", Summary: "List lab reports", Tag: "labreports",
			Roles: roles(auth.RoleDoctor, auth.RoleAdmin), Response: labreport.LabReport{}, List: true},
		{Method: http.MethodGet, Path: "/labreports/:id", Summary: "Get a lab report", Tag: "labreports",
			Roles: roles(auth.RoleDoctor, auth.RoleAdmin), Response: labreport.LabReport{}},
		{Method: http.MethodPost, Path: "/labreports", Summary: "Create a lab report", Tag: "labreports",
			Roles: roles(auth.RoleLab, auth.RoleAdmin), Request: labreport.CreateRequest{},
			Response: labreport.LabReport{}, Status: http.StatusCreated},

		{Method: http.MethodPost, Path: "/predict/first", Summary: "Stage from a first lab report", Tag: "prediction",
			Roles: predictors, Request: prediction.FirstReportRequest{}, Response: prediction.Result{}},
		{Method: http.MethodPost, Path: "/predict/followup", Summary: "Stage from a follow-up lab report", Tag: "prediction",
			Roles: predictors, Request: prediction.FollowupReportRequest{}, Response: prediction.Result{}},
	}
}
