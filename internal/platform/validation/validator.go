// Package validation adapts go-playground/validator to echo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/livercare/livercare/internal/platform/apperr"
)

// Validator implements echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that reports field names by their JSON key.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return &Validator{v: v}
}

// Validate checks i against its `validate` tags. Failures wrap
// apperr.ErrInvalidInput and name the first offending field.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.InvalidInput("%v", err)
	}
	return apperr.InvalidInput("%s", describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field %q is required", field)
	case "oneof":
		return fmt.Sprintf("field %q must be one of [%s]", field, fe.Param())
	case "min":
		return fmt.Sprintf("field %q must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("field %q must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("field %q must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("field %q must be <= %s", field, fe.Param())
	}
	return fmt.Sprintf("field %q failed %q validation", field, fe.Tag())
}
