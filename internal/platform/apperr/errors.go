// Package apperr defines the error kinds surfaced by the API and their
// mapping onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var (
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrForbidden       = errors.New("insufficient role for this operation")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("already exists")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// New returns an error of the given kind that reports msg verbatim.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// InvalidInput wraps ErrInvalidInput with a caller-facing detail.
func InvalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the name of the missing record.
func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// StatusCode returns the HTTP status for err. Unknown errors map to 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ToHTTP converts err into an *echo.HTTPError. Internal errors are masked so
// store or driver details never reach the client.
func ToHTTP(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	code := StatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	return echo.NewHTTPError(code, msg).SetInternal(err)
}

// HTTPErrorHandler renders every handler error as {"message": "..."} and
// adds the bearer challenge header on 401.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		he := ToHTTP(err)
		if he.Code >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		}
		if he.Code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}

		msg := he.Message
		if s, ok := msg.(string); ok {
			msg = map[string]string{"message": s}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, msg)
		}
		if err != nil {
			logger.Error().Err(err).Msg("write error response")
		}
	}
}
