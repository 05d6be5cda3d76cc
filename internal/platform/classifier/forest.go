package classifier

import "fmt"

// leaf marks a node without children, matching scikit-learn's TREE_LEAF.
const leaf = -1

// Tree is a binary decision tree in flattened array form. Node i splits on
// Feature[i] at Threshold[i]: rows with x <= threshold go to Left[i], others
// to Right[i]. Leaves carry per-class weights in Value[i].
type Tree struct {
	Left      []int       `json:"left"`
	Right     []int       `json:"right"`
	Feature   []int       `json:"feature"`
	Threshold []float64   `json:"threshold"`
	Value     [][]float64 `json:"value"`
}

// ForestParams is an ensemble of trees whose normalized leaf distributions
// are averaged.
type ForestParams struct {
	Trees []Tree `json:"trees"`
}

func (p *ForestParams) validate(classes, features int) error {
	if len(p.Trees) == 0 {
		return fmt.Errorf("forest: no trees")
	}
	for t := range p.Trees {
		if err := p.Trees[t].validate(classes, features); err != nil {
			return fmt.Errorf("forest: tree %d: %w", t, err)
		}
	}
	return nil
}

func (t *Tree) validate(classes, features int) error {
	n := len(t.Left)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.Right) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		if t.Left[i] == leaf {
			if t.Right[i] != leaf {
				return fmt.Errorf("node %d has only one child", i)
			}
			if len(t.Value[i]) != classes {
				return fmt.Errorf("leaf %d has %d values for %d classes", i, len(t.Value[i]), classes)
			}
			var total float64
			for _, v := range t.Value[i] {
				if v < 0 || !finite(v) {
					return fmt.Errorf("leaf %d has invalid weight", i)
				}
				total += v
			}
			if total == 0 {
				return fmt.Errorf("leaf %d has zero total weight", i)
			}
			continue
		}
		// Children must come after their parent, which rules out cycles.
		if t.Left[i] <= i || t.Left[i] >= n || t.Right[i] <= i || t.Right[i] >= n {
			return fmt.Errorf("node %d has out-of-range children", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= features {
			return fmt.Errorf("node %d splits on unknown feature %d", i, t.Feature[i])
		}
		if !finite(t.Threshold[i]) {
			return fmt.Errorf("node %d has non-finite threshold", i)
		}
	}
	return nil
}

func (t *Tree) leafFor(x []float64) []float64 {
	node := 0
	for t.Left[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	return t.Value[node]
}

func (p *ForestParams) predictProba(x []float64) []float64 {
	var out []float64
	for i := range p.Trees {
		v := p.Trees[i].leafFor(x)
		if out == nil {
			out = make([]float64, len(v))
		}
		var total float64
		for _, w := range v {
			total += w
		}
		for k, w := range v {
			out[k] += w / total
		}
	}
	for k := range out {
		out[k] /= float64(len(p.Trees))
	}
	return out
}
