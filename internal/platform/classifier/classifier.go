package classifier

import (
	"fmt"
	"math"
)

// Row holds one record keyed by feature name. Numeric features take any Go
// integer or float; categorical features take the category string.
type Row map[string]interface{}

// Prediction is the result of classifying one row.
type Prediction struct {
	Label         string
	Probabilities map[string]float64
}

type model interface {
	predictProba(x []float64) []float64
}

// Classifier evaluates one artifact.
type Classifier struct {
	name     string
	classes  []string
	features []Feature
	names    []string
	model    model
}

// Name returns the artifact name.
func (c *Classifier) Name() string { return c.name }

// Classes returns the class labels in model order.
func (c *Classifier) Classes() []string { return append([]string(nil), c.classes...) }

// Features returns the ordered feature names.
func (c *Classifier) Features() []string { return append([]string(nil), c.names...) }

// Covers reports an error naming the first model feature not in names.
func (c *Classifier) Covers(names []string) error {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, n := range c.names {
		if !have[n] {
			return fmt.Errorf("model %s needs feature %q that the input schema does not provide", c.name, n)
		}
	}
	return nil
}

// Predict classifies row. The predicted label is the class with the highest
// probability; ties go to the class listed first.
func (c *Classifier) Predict(row Row) (Prediction, error) {
	x, err := c.encode(row)
	if err != nil {
		return Prediction{}, err
	}

	proba := c.model.predictProba(x)
	best := 0
	out := make(map[string]float64, len(c.classes))
	for i, p := range proba {
		out[c.classes[i]] = p
		if p > proba[best] {
			best = i
		}
	}
	return Prediction{Label: c.classes[best], Probabilities: out}, nil
}

func (c *Classifier) encode(row Row) ([]float64, error) {
	x := make([]float64, len(c.features))
	for i, f := range c.features {
		raw, ok := row[f.Name]
		if !ok || raw == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingFeature, f.Name)
		}
		switch f.Type {
		case Categorical:
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("feature %s: expected category string, got %T", f.Name, raw)
			}
			v, ok := f.Categories[s]
			if !ok {
				return nil, fmt.Errorf("feature %s: unknown category %q", f.Name, s)
			}
			x[i] = v
		default:
			v, ok := toFloat(raw)
			if !ok {
				return nil, fmt.Errorf("feature %s: expected number, got %T", f.Name, raw)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("feature %s: value is not finite", f.Name)
			}
			x[i] = v
		}
	}
	return x, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
