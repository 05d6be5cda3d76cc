package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func serve(mw echo.MiddlewareFunc, req *http.Request, next echo.HandlerFunc) (echo.Context, *httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return c, rec, mw(next)(c)
}

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"absent", "", false},
		{"caller supplied", "lab-run-42", true},
		{"oversized", strings.Repeat("x", maxRequestIDLen+1), false},
		{"at limit", strings.Repeat("y", maxRequestIDLen), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/patients", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			c, rec, err := serve(RequestID(), req, ok)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			stored, _ := c.Get("request_id").(string)
			echoed := rec.Header().Get(RequestIDHeader)
			if stored == "" || stored != echoed {
				t.Fatalf("context id %q and header id %q must match and be non-empty", stored, echoed)
			}
			if (stored == tt.incoming) != tt.keep {
				t.Errorf("kept incoming id = %v, want %v", stored == tt.incoming, tt.keep)
			}
			if len(stored) > maxRequestIDLen {
				t.Errorf("id has %d bytes, limit is %d", len(stored), maxRequestIDLen)
			}
		})
	}
}

func TestRecovery_TurnsPanicInto500(t *testing.T) {
	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, "/predict/first", nil)
	_, _, err := serve(Recovery(zerolog.New(&buf)), req, func(echo.Context) error {
		panic("model exploded")
	})

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 HTTPError, got %v", err)
	}
	if msg, _ := he.Message.(string); strings.Contains(msg, "exploded") {
		t.Errorf("panic value leaked to client: %q", msg)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["panic"] != "model exploded" || line["path"] != "/predict/first" {
		t.Errorf("unexpected log fields: %v", line)
	}
}

func TestRecovery_NoPanic(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	_, rec, err := serve(Recovery(zerolog.Nop()), req, ok)
	if err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200 and no error, got %d / %v", rec.Code, err)
	}
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name  string
		next  echo.HandlerFunc
		level string
		code  int
	}{
		{"success", ok, "info", http.StatusOK},
		{"forbidden", func(echo.Context) error {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}, "warn", http.StatusForbidden},
		{"server error", func(echo.Context) error {
			return errors.New("pool closed")
		}, "error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			req := httptest.NewRequest(http.MethodGet, "/labreports/my", nil)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)
			c.Set("request_id", "rid-7")
			c.Set("username", "lab1")

			if err := Logger(zerolog.New(&buf))(tt.next)(c); err != nil {
				t.Fatalf("error should be handled inside the middleware, got %v", err)
			}
			if rec.Code != tt.code {
				t.Errorf("status written = %d, want %d", rec.Code, tt.code)
			}

			var line map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
				t.Fatalf("decode log line: %v", err)
			}
			if line["level"] != tt.level {
				t.Errorf("level = %v, want %s", line["level"], tt.level)
			}
			if line["status"] != float64(tt.code) || line["path"] != "/labreports/my" {
				t.Errorf("unexpected request fields: %v", line)
			}
			if line["request_id"] != "rid-7" || line["user"] != "lab1" {
				t.Errorf("unexpected identity fields: %v", line)
			}
		})
	}
}
