package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/livercare/livercare/internal/platform/apperr"
)

func TestTranslateError(t *testing.T) {
	if TranslateError(nil, "patient") != nil {
		t.Error("nil should stay nil")
	}

	err := TranslateError(fmt.Errorf("scan: %w", pgx.ErrNoRows), "patient")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "patient not found" {
		t.Errorf("unexpected message %q", err.Error())
	}

	dup := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	err = TranslateError(dup, "user")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if !IsUniqueViolation(err) {
		t.Error("expected unique violation to remain detectable")
	}

	other := errors.New("connection reset")
	if TranslateError(other, "user") != other {
		t.Error("unrelated errors should pass through")
	}
}
