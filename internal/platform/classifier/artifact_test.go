package classifier

import (
	"strings"
	"testing"
)

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "unknown field",
			json: `{"name":"x","kind":"logistic","classes":["1","2"],"features":[{"name":"a","type":"numeric"}],"bias":1}`,
			want: "unknown field",
		},
		{
			name: "unknown kind",
			json: `{"name":"x","kind":"svm","classes":["1","2"],"features":[{"name":"a","type":"numeric"}]}`,
			want: "unknown model kind",
		},
		{
			name: "single class",
			json: `{"name":"x","kind":"logistic","classes":["1"],"features":[{"name":"a","type":"numeric"}]}`,
			want: "two classes",
		},
		{
			name: "duplicate feature",
			json: `{"name":"x","kind":"logistic","classes":["1","2"],"features":[{"name":"a","type":"numeric"},{"name":"a","type":"numeric"}]}`,
			want: "duplicate feature",
		},
		{
			name: "categorical without categories",
			json: `{"name":"x","kind":"logistic","classes":["1","2"],"features":[{"name":"Sex","type":"categorical"}]}`,
			want: "no categories",
		},
		{
			name: "coefficient shape",
			json: `{"name":"x","kind":"logistic","classes":["1","2"],"features":[{"name":"a","type":"numeric"}],
				"logistic":{"coefficients":[[1,2],[3,4]],"intercepts":[0,0]}}`,
			want: "2 weights for 1 features",
		},
		{
			name: "zero scale",
			json: `{"name":"x","kind":"logistic","classes":["1","2"],"features":[{"name":"a","type":"numeric"}],
				"logistic":{"coefficients":[[1],[2]],"intercepts":[0,0],"scale":[0]}}`,
			want: "non-zero",
		},
		{
			name: "missing forest",
			json: `{"name":"x","kind":"forest","classes":["1","2"],"features":[{"name":"a","type":"numeric"}]}`,
			want: "no forest parameters",
		},
		{
			name: "cyclic tree",
			json: `{"name":"x","kind":"forest","classes":["1","2"],"features":[{"name":"a","type":"numeric"}],
				"forest":{"trees":[{"left":[0,-1],"right":[1,-1],"feature":[0,-2],"threshold":[1,-2],"value":[[1,1],[1,1]]}]}}`,
			want: "out-of-range children",
		},
		{
			name: "leaf without weight",
			json: `{"name":"x","kind":"forest","classes":["1","2"],"features":[{"name":"a","type":"numeric"}],
				"forest":{"trees":[{"left":[-1],"right":[-1],"feature":[-2],"threshold":[-2],"value":[[0,0]]}]}}`,
			want: "zero total weight",
		},
		{
			name: "split on unknown feature",
			json: `{"name":"x","kind":"forest","classes":["1","2"],"features":[{"name":"a","type":"numeric"}],
				"forest":{"trees":[{"left":[1,-1,-1],"right":[2,-1,-1],"feature":[3,-2,-2],"threshold":[1,-2,-2],"value":[[1,1],[1,0],[0,1]]}]}}`,
			want: "unknown feature",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.json"); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestClassifier_AccessorsCopy(t *testing.T) {
	c := loadTestdata(t, "forest.json")
	classes := c.Classes()
	classes[0] = "mutated"
	if c.Classes()[0] != "1" {
		t.Error("Classes() must not expose internal state")
	}
	if got := strings.Join(c.Features(), ","); got != "Bilirubin,Sex" {
		t.Errorf("unexpected feature order %s", got)
	}
	if c.Name() != "toy_forest" {
		t.Errorf("unexpected name %s", c.Name())
	}
}
