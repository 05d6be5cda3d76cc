// Package classifier evaluates stage classifiers exported as JSON artifacts.
//
// An artifact names its ordered input features and class labels and carries
// the parameters of one model kind: multinomial logistic regression or a
// random forest of CART trees in flattened array form. Loaded classifiers are
// immutable and safe for concurrent use.
package classifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// Model kinds.
const (
	KindLogistic = "logistic"
	KindForest   = "forest"
)

// Feature types.
const (
	Numeric     = "numeric"
	Categorical = "categorical"
)

// ErrMissingFeature is returned when a row lacks a column the model needs.
var ErrMissingFeature = errors.New("missing feature")

// Feature describes one input column.
type Feature struct {
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	Categories map[string]float64 `json:"categories,omitempty"`
}

// Artifact is the on-disk model description.
type Artifact struct {
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Classes  []string        `json:"classes"`
	Features []Feature       `json:"features"`
	Logistic *LogisticParams `json:"logistic,omitempty"`
	Forest   *ForestParams   `json:"forest,omitempty"`
}

// Load reads and validates an artifact file.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates an artifact.
func Parse(data []byte) (*Classifier, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var a Artifact
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return New(a)
}

// New validates a and builds a Classifier from it.
func New(a Artifact) (*Classifier, error) {
	if err := a.validateHeader(); err != nil {
		return nil, err
	}

	var m model
	switch a.Kind {
	case KindLogistic:
		if a.Logistic == nil {
			return nil, errors.New("logistic artifact has no logistic parameters")
		}
		if err := a.Logistic.validate(len(a.Classes), len(a.Features)); err != nil {
			return nil, err
		}
		m = a.Logistic
	case KindForest:
		if a.Forest == nil {
			return nil, errors.New("forest artifact has no forest parameters")
		}
		if err := a.Forest.validate(len(a.Classes), len(a.Features)); err != nil {
			return nil, err
		}
		m = a.Forest
	default:
		return nil, fmt.Errorf("unknown model kind %q", a.Kind)
	}

	names := make([]string, len(a.Features))
	for i, f := range a.Features {
		names[i] = f.Name
	}
	return &Classifier{
		name:     a.Name,
		classes:  append([]string(nil), a.Classes...),
		features: append([]Feature(nil), a.Features...),
		names:    names,
		model:    m,
	}, nil
}

func (a *Artifact) validateHeader() error {
	if len(a.Classes) < 2 {
		return errors.New("artifact needs at least two classes")
	}
	seen := make(map[string]bool, len(a.Classes))
	for _, c := range a.Classes {
		if c == "" || seen[c] {
			return fmt.Errorf("invalid or duplicate class label %q", c)
		}
		seen[c] = true
	}

	if len(a.Features) == 0 {
		return errors.New("artifact declares no features")
	}
	names := make(map[string]bool, len(a.Features))
	for _, f := range a.Features {
		if f.Name == "" || names[f.Name] {
			return fmt.Errorf("invalid or duplicate feature name %q", f.Name)
		}
		names[f.Name] = true
		switch f.Type {
		case Numeric:
		case Categorical:
			if len(f.Categories) == 0 {
				return fmt.Errorf("categorical feature %q has no categories", f.Name)
			}
		default:
			return fmt.Errorf("feature %q has unknown type %q", f.Name, f.Type)
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
