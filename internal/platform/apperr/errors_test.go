package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("%w: required role admin", ErrForbidden), http.StatusForbidden},
		{NotFound("patient"), http.StatusNotFound},
		{InvalidInput("field %q is required", "AST"), http.StatusBadRequest},
		{errors.Join(ErrConflict, errors.New("dup")), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestNew_KeepsMessage(t *testing.T) {
	err := New(ErrUnauthenticated, "invalid credentials")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Error("expected kind to be preserved")
	}
	if err.Error() != "invalid credentials" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestToHTTP_MasksInternalErrors(t *testing.T) {
	he := ToHTTP(errors.New("pq: connection refused"))
	if he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", he.Code)
	}
	if he.Message != "internal server error" {
		t.Errorf("driver detail leaked: %v", he.Message)
	}
	if he.Internal == nil {
		t.Error("expected original error kept as internal")
	}
}

func TestToHTTP_PassesEchoErrors(t *testing.T) {
	orig := echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too large")
	if ToHTTP(orig) != orig {
		t.Error("expected echo errors to pass through unchanged")
	}
}

func serveError(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/patients/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	HTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_Unauthenticated(t *testing.T) {
	rec := serveError(t, http.MethodGet, ErrUnauthenticated)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Error("expected WWW-Authenticate: Bearer")
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "could not validate credentials" {
		t.Errorf("unexpected message %q", body["message"])
	}
}

func TestHTTPErrorHandler_ForbiddenHasNoChallenge(t *testing.T) {
	rec := serveError(t, http.MethodGet, fmt.Errorf("%w: required role lab", ErrForbidden))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "" {
		t.Error("403 must not carry a bearer challenge")
	}
}

func TestHTTPErrorHandler_Head(t *testing.T) {
	rec := serveError(t, http.MethodHead, NotFound("patient"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("HEAD responses must not have a body")
	}
}
