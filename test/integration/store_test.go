//go:build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/livercare/livercare/internal/domain/account"
	"github.com/livercare/livercare/internal/domain/appointment"
	"github.com/livercare/livercare/internal/domain/doctor"
	"github.com/livercare/livercare/internal/domain/labreport"
	"github.com/livercare/livercare/internal/domain/patient"
	"github.com/livercare/livercare/internal/platform/apperr"
	"github.com/livercare/livercare/internal/platform/auth"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	resetTables(t)
	repo := account.NewUserRepoPG(globalPool)

	t.Run("Create", func(t *testing.T) {
		u := &account.User{Username: "mia", PasswordHash: "digest", Role: auth.RolePatient, Name: ptrStr("Mia")}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if u.ID == uuid.Nil || u.CreatedAt.IsZero() {
			t.Fatalf("expected id and created_at, got %+v", u)
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		err := repo.Create(ctx, &account.User{Username: "mia", PasswordHash: "other", Role: auth.RoleDoctor})
		if !errors.Is(err, apperr.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("GetByUsername", func(t *testing.T) {
		u, err := repo.GetByUsername(ctx, "mia")
		if err != nil {
			t.Fatalf("GetByUsername: %v", err)
		}
		if u.Role != auth.RolePatient || u.PasswordHash != "digest" || u.Name == nil || *u.Name != "Mia" {
			t.Errorf("unexpected user %+v", u)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRegisterAndLogin_Concurrent(t *testing.T) {
	ctx := context.Background()
	resetTables(t)
	tokens := auth.NewTokenService([]byte("integration-secret"), time.Hour)
	svc := account.NewService(account.NewUserRepoPG(globalPool), tokens, nil)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user%d", i)
			if _, err := svc.Register(ctx, account.RegisterRequest{Username: name, Password: "pw-" + name, Role: auth.RoleLab}); err != nil {
				errs <- fmt.Errorf("register %s: %w", name, err)
				return
			}
			resp, err := svc.Login(ctx, name, "pw-"+name)
			if err != nil {
				errs <- fmt.Errorf("login %s: %w", name, err)
				return
			}
			claim, err := tokens.Validate(resp.AccessToken)
			if err != nil || claim.Username != name || claim.Role != auth.RoleLab {
				errs <- fmt.Errorf("token for %s: %+v %v", name, claim, err)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestPatientStore(t *testing.T) {
	ctx := context.Background()
	resetTables(t)
	repo := patient.NewPatientRepoPG(globalPool)

	for _, p := range []*patient.Patient{
		{Name: "Mia", Username: "mia", Age: 52, Gender: "F", Contact: "555-0100", DoctorID: ptrStr("drwho")},
		{Name: "Leo", Username: "leo", Age: 61, Gender: "M", Contact: "555-0101", DoctorID: ptrStr("drwho")},
		{Name: "Ada", Username: "ada", Age: 47, Gender: "F", Contact: "555-0102"},
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", p.Username, err)
		}
	}

	mia, err := repo.GetByUsername(ctx, "mia")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	got, err := repo.GetByID(ctx, mia.ID)
	if err != nil || got.Name != "Mia" || got.Age != 52 {
		t.Errorf("GetByID: %+v %v", got, err)
	}
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	mine, err := repo.ListByDoctor(ctx, "drwho")
	if err != nil || len(mine) != 2 {
		t.Errorf("ListByDoctor: %d %v", len(mine), err)
	}

	page, total, err := repo.List(ctx, 2, 0)
	if err != nil || total != 3 || len(page) != 2 {
		t.Errorf("List page 1: %d of %d, %v", len(page), total, err)
	}
	page, _, err = repo.List(ctx, 2, 2)
	if err != nil || len(page) != 1 {
		t.Errorf("List page 2: %d, %v", len(page), err)
	}
}

func TestDoctorStore(t *testing.T) {
	ctx := context.Background()
	resetTables(t)
	repo := doctor.NewDoctorRepoPG(globalPool)

	d := &doctor.Doctor{Name: "Dr. Who", Hospital: "City General", Rating: 4.5, Timing: "9-5", Status: "Available"}
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, d.ID)
	if err != nil || got.Rating != 4.5 || got.Hospital != "City General" {
		t.Errorf("GetByID: %+v %v", got, err)
	}
	items, total, err := repo.List(ctx, 10, 0)
	if err != nil || total != 1 || len(items) != 1 {
		t.Errorf("List: %d of %d, %v", len(items), total, err)
	}
}

func TestAppointmentStore(t *testing.T) {
	ctx := context.Background()
	resetTables(t)
	repo := appointment.NewAppointmentRepoPG(globalPool)

	a := &appointment.Appointment{PatientID: "mia", DoctorID: "drwho", Date: "2026-05-01", Status: "Booked"}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	b := &appointment.Appointment{PatientID: "leo", DoctorID: "drwho", Date: "2026-05-02", Status: "Booked",
		Prescribed: true, NextDate: ptrStr("2026-06-02")}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, b.ID)
	if err != nil || !got.Prescribed || got.NextDate == nil || *got.NextDate != "2026-06-02" {
		t.Errorf("GetByID: %+v %v", got, err)
	}
	if items, err := repo.ListByPatient(ctx, "mia"); err != nil || len(items) != 1 {
		t.Errorf("ListByPatient: %d %v", len(items), err)
	}
	if items, err := repo.ListByDoctor(ctx, "drwho"); err != nil || len(items) != 2 {
		t.Errorf("ListByDoctor: %d %v", len(items), err)
	}
}

func TestLabReportStore(t *testing.T) {
	ctx := context.Background()
	resetTables(t)
	repo := labreport.NewLabReportRepoPG(globalPool)
	svc := labreport.NewService(repo)

	r := &labreport.LabReport{
		PatientID: "mia", DoctorID: "drwho", Age: 45, Sex: "M",
		Albumin: 3.5, Bilirubin: 1.2, ALT: 30, AST: 28, ALP: 90, INR: 1.1,
		Platelets: 210, Sodium: 138, Creatinine: 0.9,
		Ascites: "N", Hepatomegaly: "Y", Spiders: "N", Edema: "N",
	}
	if err := svc.CreateReport(ctx, r, auth.Claim{Username: "citylab", Role: auth.RoleLab}); err != nil {
		t.Fatalf("CreateReport: %v", err)
	}

	got, err := repo.GetByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CreatedBy == nil || *got.CreatedBy != "citylab" {
		t.Errorf("expected createdBy citylab, got %v", got.CreatedBy)
	}
	if !got.CreatedAt.Equal(r.CreatedAt) {
		t.Errorf("created_at round trip: %v != %v", got.CreatedAt, r.CreatedAt)
	}
	if got.AST != 28 || got.Hepatomegaly != "Y" || got.Stage != nil {
		t.Errorf("unexpected report %+v", got)
	}

	if items, err := repo.ListByPatient(ctx, "mia"); err != nil || len(items) != 1 {
		t.Errorf("ListByPatient: %d %v", len(items), err)
	}
	if items, err := repo.ListByCreator(ctx, "citylab"); err != nil || len(items) != 1 {
		t.Errorf("ListByCreator: %d %v", len(items), err)
	}
	if _, total, err := repo.List(ctx, 10, 0); err != nil || total != 1 {
		t.Errorf("List: %d %v", total, err)
	}
}
