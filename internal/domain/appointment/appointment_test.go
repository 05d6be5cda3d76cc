package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/livercare/livercare/internal/platform/apperr"
	"github.com/livercare/livercare/internal/platform/auth"
	"github.com/livercare/livercare/internal/platform/validation"
)

// -- Mock Appointment Repository --

type mockAppointmentRepo struct {
	items []*Appointment
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.items = append(m.items, a)
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	for _, a := range m.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperr.NotFound("appointment")
}

func (m *mockAppointmentRepo) filter(keep func(*Appointment) bool) []*Appointment {
	out := []*Appointment{}
	for _, a := range m.items {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (m *mockAppointmentRepo) ListByPatient(_ context.Context, patientID string) ([]*Appointment, error) {
	return m.filter(func(a *Appointment) bool { return a.PatientID == patientID }), nil
}

func (m *mockAppointmentRepo) ListByDoctor(_ context.Context, doctorID string) ([]*Appointment, error) {
	return m.filter(func(a *Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (m *mockAppointmentRepo) List(_ context.Context, limit, offset int) ([]*Appointment, int, error) {
	return m.items, len(m.items), nil
}

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(NewService(&mockAppointmentRepo{}))
	e := echo.New()
	e.Validator = validation.New()
	return h, e
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	for _, a := range []*Appointment{
		{PatientID: "mia", DoctorID: "drwho", Date: "2026-05-01", Status: "Booked"},
		{PatientID: "mia", DoctorID: "drno", Date: "2026-05-02", Status: "Booked"},
		{PatientID: "leo", DoctorID: "drwho", Date: "2026-05-03", Status: "Completed"},
	} {
		if err := svc.CreateAppointment(context.Background(), a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestService_CreateAppointment_Validation(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{})
	for _, a := range []*Appointment{{DoctorID: "d"}, {PatientID: "p"}} {
		if err := svc.CreateAppointment(context.Background(), a); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestService_PerUserViews(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{})
	seed(t, svc)

	mine, _ := svc.ListForPatient(context.Background(), "mia")
	if len(mine) != 2 {
		t.Errorf("expected 2 appointments for mia, got %d", len(mine))
	}
	doc, _ := svc.ListForDoctor(context.Background(), "drwho")
	if len(doc) != 2 {
		t.Errorf("expected 2 appointments for drwho, got %d", len(doc))
	}
}

func TestHandler_CreateAppointment_DefaultsPrescribed(t *testing.T) {
	h, e := newTestHandler()

	body := `{"patientId":"mia","doctorId":"drwho","date":"2026-05-01","status":"Booked"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.CreateAppointment(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var a map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &a)
	if a["prescribed"] != false {
		t.Errorf("expected prescribed=false, got %v", a["prescribed"])
	}
	if _, ok := a["nextDate"]; ok {
		t.Error("nextDate should be omitted when unset")
	}
}

func TestHandler_GetAppointment_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetAppointment(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestRoutes_AccessPolicy(t *testing.T) {
	h, e := newTestHandler()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(zerolog.Nop())
	tokens := auth.NewTokenService([]byte("appointment-routes"), 0)
	e.Use(auth.BearerAuth(tokens, zerolog.Nop(), auth.AuthSkipper))
	h.RegisterRoutes(e)
	seed(t, h.svc)

	tests := []struct {
		path  string
		user  string
		role  auth.Role
		want  int
		count int
	}{
		{"/appointments/me", "mia", auth.RolePatient, http.StatusOK, 2},
		{"/appointments/me", "drwho", auth.RoleDoctor, http.StatusForbidden, -1},
		{"/appointments/my", "drwho", auth.RoleDoctor, http.StatusOK, 2},
		{"/appointments/my", "mia", auth.RolePatient, http.StatusForbidden, -1},
		{"/appointments", "x", auth.RoleLab, http.StatusOK, 3},
		{"/appointments", "mia", auth.RolePatient, http.StatusForbidden, -1},
	}
	for _, tt := range tests {
		token, err := tokens.Issue(tt.user, tt.role, 0)
		if err != nil {
			t.Fatalf("Issue() error: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("GET %s as %s: expected %d, got %d", tt.path, tt.role, tt.want, rec.Code)
			continue
		}
		if tt.count >= 0 {
			var items []Appointment
			if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(items) != tt.count {
				t.Errorf("GET %s as %s: expected %d items, got %d", tt.path, tt.user, tt.count, len(items))
			}
		}
	}

	token, _ := tokens.Issue("ann", auth.RoleLab, 0)
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("lab must not create appointments, got %d", rec.Code)
	}
}
