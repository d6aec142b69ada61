package classifier

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFragments(t *testing.T) {
	got, err := Fragments("|BT| (ROOT (NP-LOCATION (NNP Chile)(NNP Chile))) |ET|")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"ROOT":                   1,
		"ROOT -> NP-LOCATION":    1,
		"NP-LOCATION":            1,
		"NP-LOCATION -> NNP NNP": 1,
		"NNP":                    2,
		"NNP -> Chile":           2,
	}, got)
}

func TestFragments_Malformed(t *testing.T) {
	for _, in := range []string{"(ROOT (NP", "", "(NP-GEO (LOC) (NNP-GEO (LOC) Chile))"} {
		got, err := Fragments(in)
		assert.Error(t, err, in)
		assert.Nil(t, got)
	}
}

func TestLinear_Classify(t *testing.T) {
	m := &Linear{
		Bias: -1,
		Weights: map[string]float64{
			"NP-LOCATION": 2,
			"NNP":         0.25,
			"VP":          10,
		},
	}
	assert.InDelta(t, 1.5, m.Classify("(ROOT (NP-LOCATION (NNP Chile)(NNP Chile)))"), 1e-9)
	assert.InDelta(t, -1, m.Classify("not a tree"), 1e-9)
}

func TestLoadModel_Linear(t *testing.T) {
	path := writeModel(t, `
kind: linear
bias: 0.5
weights:
  NP-LOCATION: 1.5
  "WHNP -> WRB NN": -0.5
`)
	c, err := LoadModel(path)
	require.NoError(t, err)

	lin, ok := c.(*Linear)
	require.True(t, ok)
	assert.Equal(t, 0.5, lin.Bias)
	assert.Equal(t, -0.5, lin.Weights["WHNP -> WRB NN"])
	assert.InDelta(t, 2.0, c.Classify("(S (NP-LOCATION (NNP Chile)))"), 1e-9)
}

func TestLoadModel_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		kind bool
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, false},
		{"not yaml", func(t *testing.T) string { return writeModel(t, "kind: [linear") }, false},
		{"no kind", func(t *testing.T) string { return writeModel(t, "bias: 1") }, false},
		{"unknown kind", func(t *testing.T) string { return writeModel(t, "kind: svm-tk") }, true},
		{"bad weights", func(t *testing.T) string { return writeModel(t, "kind: linear\nweights: [1, 2]") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			c, err := LoadModel(path)
			assert.Nil(t, c)
			var loadErr *ErrModelLoad
			require.True(t, errors.As(err, &loadErr), "got %v", err)
			assert.Equal(t, path, loadErr.Path)
			assert.Equal(t, tt.kind, errors.Is(err, ErrUnknownKind))
		})
	}
}

func TestRegisterKind(t *testing.T) {
	if !slices.Contains(Kinds(), "constant-test") {
		RegisterKind("constant-test", func(data []byte) (Classifier, error) {
			return Fixed(42), nil
		})
	}
	assert.Contains(t, Kinds(), "constant-test")
	assert.Contains(t, Kinds(), KindLinear)

	c, err := DefaultFactory.CreateClassifier(writeModel(t, "kind: constant-test"))
	require.NoError(t, err)
	assert.Equal(t, 42.0, c.Classify(""))

	assert.Panics(t, func() { RegisterKind("constant-test", func([]byte) (Classifier, error) { return nil, nil }) })
	assert.Panics(t, func() { RegisterKind("nil-decoder", nil) })
}

func TestBuild_WithLinearModels(t *testing.T) {
	loc := writeModel(t, "kind: linear\nweights:\n  NP-LOCATION: 1\n")
	hum := writeModel(t, "kind: linear\nweights:\n  NP-PERSON: 1\n")

	p, err := Build(DefaultFactory, []Entry{{"HUM", hum}, {"LOC", loc}})
	require.NoError(t, err)

	got, err := p.MostConfident("(S (NP (NNP Ann))(VP (VBZ lives)(PP (IN in)(NP-LOCATION (NNP Chile)))))")
	require.NoError(t, err)
	assert.Equal(t, "LOC", got)

	got, err = p.MostConfident("(S (NP (NNP Ann)))")
	require.NoError(t, err)
	assert.Equal(t, "HUM", got, "all-zero scores tie and the first model wins")
}
