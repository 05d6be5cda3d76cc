package classifier

import (
	"fmt"
	"math"
)

// LogisticParams holds a multinomial logistic regression. Mean and Scale are
// optional standardization applied to inputs before the linear step.
type LogisticParams struct {
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
	Mean         []float64   `json:"mean,omitempty"`
	Scale        []float64   `json:"scale,omitempty"`
}

func (p *LogisticParams) validate(classes, features int) error {
	if len(p.Coefficients) != classes {
		return fmt.Errorf("logistic: %d coefficient rows for %d classes", len(p.Coefficients), classes)
	}
	for k, row := range p.Coefficients {
		if len(row) != features {
			return fmt.Errorf("logistic: coefficient row %d has %d weights for %d features", k, len(row), features)
		}
		if !finite(row...) {
			return fmt.Errorf("logistic: coefficient row %d is not finite", k)
		}
	}
	if len(p.Intercepts) != classes || !finite(p.Intercepts...) {
		return fmt.Errorf("logistic: need %d finite intercepts", classes)
	}
	if len(p.Mean) != 0 && len(p.Mean) != features {
		return fmt.Errorf("logistic: mean has %d values for %d features", len(p.Mean), features)
	}
	if len(p.Scale) != 0 {
		if len(p.Scale) != features {
			return fmt.Errorf("logistic: scale has %d values for %d features", len(p.Scale), features)
		}
		for j, s := range p.Scale {
			if s == 0 || !finite(s) {
				return fmt.Errorf("logistic: scale %d must be finite and non-zero", j)
			}
		}
	}
	return nil
}

func (p *LogisticParams) predictProba(x []float64) []float64 {
	z := make([]float64, len(p.Coefficients))
	for k, w := range p.Coefficients {
		sum := p.Intercepts[k]
		for j, v := range x {
			if len(p.Mean) > 0 {
				v -= p.Mean[j]
			}
			if len(p.Scale) > 0 {
				v /= p.Scale[j]
			}
			sum += w[j] * v
		}
		z[k] = sum
	}
	return softmax(z)
}

func softmax(z []float64) []float64 {
	max := z[0]
	for _, v := range z[1:] {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(z))
	var total float64
	for i, v := range z {
		out[i] = math.Exp(v - max)
		total += out[i]
	}
	for i := range out {
		out[i] /= total
	}
	return out
}
