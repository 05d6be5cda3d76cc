package prediction

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/livercare/livercare/internal/platform/apperr"
)

// FirstReportRequest is the body of POST /predict/first. Pointers make a
// missing key distinguishable from a zero value.
type FirstReportRequest struct {
	Age          *float64 `json:"Age" validate:"required"`
	Sex          *string  `json:"Sex" validate:"required,oneof=M F"`
	Albumin      *float64 `json:"Albumin" validate:"required"`
	Bilirubin    *float64 `json:"Bilirubin" validate:"required"`
	ALT          *float64 `json:"ALT" validate:"required"`
	AST          *float64 `json:"AST" validate:"required"`
	ALP          *float64 `json:"ALP" validate:"required"`
	INR          *float64 `json:"INR" validate:"required"`
	Platelets    *float64 `json:"Platelets" validate:"required"`
	Sodium       *float64 `json:"Sodium" validate:"required"`
	Creatinine   *float64 `json:"Creatinine" validate:"required"`
	Ascites      *int     `json:"Ascites" validate:"required,oneof=0 1"`
	Hepatomegaly *int     `json:"Hepatomegaly" validate:"required,oneof=0 1"`
	Spiders      *int     `json:"Spiders" validate:"required,oneof=0 1"`
	Edema        *int     `json:"Edema" validate:"required,oneof=0 1"`
}

// FollowupReportRequest is the body of POST /predict/followup.
type FollowupReportRequest struct {
	FirstReportRequest
	PreviousStage *int `json:"previous_stage" validate:"required"`
	BedRest       *int `json:"bed_rest" validate:"required,oneof=0 1"`
	Drugs         *int `json:"drugs" validate:"required,oneof=0 1"`
}

func (in *FirstReportRequest) features() FirstReportFeatures {
	return FirstReportFeatures{
		Age:          *in.Age,
		Sex:          *in.Sex,
		Albumin:      *in.Albumin,
		Bilirubin:    *in.Bilirubin,
		ALT:          *in.ALT,
		AST:          *in.AST,
		ALP:          *in.ALP,
		INR:          *in.INR,
		Platelets:    *in.Platelets,
		Sodium:       *in.Sodium,
		Creatinine:   *in.Creatinine,
		Ascites:      *in.Ascites,
		Hepatomegaly: *in.Hepatomegaly,
		Spiders:      *in.Spiders,
		Edema:        *in.Edema,
	}
}

func (in *FollowupReportRequest) features() FollowupReportFeatures {
	return FollowupReportFeatures{
		FirstReportFeatures: in.FirstReportRequest.features(),
		PreviousStage:       *in.PreviousStage,
		BedRest:             *in.BedRest,
		Drugs:               *in.Drugs,
	}
}

// decodeStrict reads exactly one JSON object whose keys are exactly the
// names in schema, compared case-sensitively, then decodes it into v and
// runs the echo validator.
func decodeStrict(c echo.Context, v interface{}, schema []string) error {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return apperr.InvalidInput("read request body: %v", err)
	}
	if err := checkKeys(data, schema); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	return c.Validate(v)
}

// checkKeys walks the top-level object of data. encoding/json folds case
// when matching struct fields and keeps the last of repeated keys, so both
// are rejected here before the struct decode.
func checkKeys(data []byte, schema []string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return decodeError(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return apperr.InvalidInput("request body must be a JSON object")
	}

	allowed := make(map[string]bool, len(schema))
	for _, name := range schema {
		allowed[name] = true
	}
	seen := make(map[string]bool, len(schema))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return decodeError(err)
		}
		key, _ := tok.(string)
		switch {
		case !allowed[key]:
			return apperr.InvalidInput("unknown field %q", key)
		case seen[key]:
			return apperr.InvalidInput("duplicate field %q", key)
		}
		seen[key] = true
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return decodeError(err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperr.InvalidInput("request body must contain a single JSON object")
	}

	for _, name := range schema {
		if !seen[name] {
			return apperr.InvalidInput("missing field %q", name)
		}
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return apperr.InvalidInput("request body is empty")
	case errors.As(err, &typeErr):
		return apperr.InvalidInput("field %q must be %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	case errors.As(err, &syntaxErr):
		return apperr.InvalidInput("malformed JSON at offset %d", syntaxErr.Offset)
	}
	return apperr.InvalidInput("%s", strings.TrimPrefix(err.Error(), "json: "))
}
