package classifier

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const instance = "(ROOT (SBARQ (WHNP (WRB How)(JJ many))(NNS people)))"

func newPool(t *testing.T, scores map[string]float64, order ...string) *OneVsAll {
	t.Helper()
	models := make(map[string]Classifier, len(scores))
	for id, s := range scores {
		models[id+".model"] = Fixed(s)
	}
	p := NewOneVsAll(NewMockFactory(models))
	for _, id := range order {
		require.NoError(t, p.AddModel(id, id+".model"))
	}
	return p
}

func TestMostConfident_PicksMaximum(t *testing.T) {
	p := newPool(t, map[string]float64{"A": 0.2, "B": 0.9, "C": 0.5}, "A", "B", "C")

	got, err := p.MostConfident(instance)
	require.NoError(t, err)
	assert.Equal(t, "B", got)
}

func TestMostConfident_EmptyPool(t *testing.T) {
	p := NewOneVsAll(NewMockFactory(nil))

	got, err := p.MostConfident(instance)
	assert.ErrorIs(t, err, ErrNoModels)
	assert.Empty(t, got)
}

func TestDecide_TieGoesToEarliest(t *testing.T) {
	tests := []struct {
		name  string
		order []string
		want  string
	}{
		{"A first", []string{"A", "B", "C"}, "A"},
		{"C first", []string{"C", "B", "A"}, "C"},
		{"B first", []string{"B", "A", "C"}, "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPool(t, map[string]float64{"A": 0.7, "B": 0.7, "C": 0.7}, tt.order...)
			d, err := p.Decide(instance)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.ID)
			assert.Equal(t, 0.7, d.Confidence)
		})
	}
}

func TestDecide_NegativeAndNaNScores(t *testing.T) {
	p := newPool(t, map[string]float64{"A": math.NaN(), "B": -3, "C": -1}, "A", "B", "C")
	d, err := p.Decide(instance)
	require.NoError(t, err)
	assert.Equal(t, "C", d.ID)

	p = newPool(t, map[string]float64{"A": math.Inf(-1)}, "A")
	d, err = p.Decide(instance)
	require.NoError(t, err)
	assert.Equal(t, "A", d.ID)

	p = newPool(t, map[string]float64{"A": math.NaN(), "B": math.NaN()}, "A", "B")
	d, err = p.Decide(instance)
	require.NoError(t, err)
	assert.Equal(t, "A", d.ID)
}

func TestDecide_ReportsAllScoresInOrder(t *testing.T) {
	p := newPool(t, map[string]float64{"A": 0.2, "B": 0.9, "C": 0.5}, "C", "A", "B")
	d, err := p.Decide(instance)
	require.NoError(t, err)
	assert.Equal(t, []Score{{"C", 0.5}, {"A", 0.2}, {"B", 0.9}}, d.Scores)
	assert.Equal(t, []string{"C", "A", "B"}, p.IDs())
	assert.Equal(t, 3, p.Len())
}

func TestAddModel_ReplaceKeepsPosition(t *testing.T) {
	f := NewMockFactory(map[string]Classifier{
		"a1": Fixed(0.1),
		"a2": Fixed(0.8),
		"b":  Fixed(0.8),
	})
	p := NewOneVsAll(f)
	require.NoError(t, p.AddModel("A", "a1"))
	require.NoError(t, p.AddModel("B", "b"))

	got, err := p.MostConfident(instance)
	require.NoError(t, err)
	assert.Equal(t, "B", got)

	require.NoError(t, p.AddModel("A", "a2"))
	assert.Equal(t, []string{"A", "B"}, p.IDs())
	got, err = p.MostConfident(instance)
	require.NoError(t, err)
	assert.Equal(t, "A", got, "replaced A ties with B and keeps its earlier position")
	assert.Equal(t, 3, f.CallCount())
}

func TestAddModel_FactoryErrorIsFatal(t *testing.T) {
	boom := errors.New("corrupt artifact")
	f := NewMockFactory(map[string]Classifier{"a": Fixed(1)})
	f.SetError("bad", boom)
	p := NewOneVsAll(f)

	err := p.AddModel("BAD", "bad")
	var loadErr *ErrModelLoad
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "BAD", loadErr.ID)
	assert.Equal(t, "bad", loadErr.Path)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, p.Len())
}

func TestAddModel_NilClassifierRejected(t *testing.T) {
	tests := []struct {
		name string
		c    Classifier
	}{
		{"untyped nil", nil},
		{"nil linear model", (*Linear)(nil)},
		{"nil func", ClassifierFunc(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewOneVsAll(FactoryFunc(func(string) (Classifier, error) { return tt.c, nil }))
			err := p.AddModel("A", "a")
			var loadErr *ErrModelLoad
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, "A", loadErr.ID)
			assert.Equal(t, 0, p.Len())
		})
	}
}

func TestBuild_FailsFast(t *testing.T) {
	f := NewMockFactory(map[string]Classifier{"a": Fixed(1), "c": Fixed(2)})
	p, err := Build(f, []Entry{{"A", "a"}, {"B", "missing"}, {"C", "c"}})
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Equal(t, []string{"a", "missing"}, f.Calls, "loading stops at the first failure")

	p, err = Build(f, []Entry{{"A", "a"}, {"C", "c"}})
	require.NoError(t, err)
	got, err := p.MostConfident(instance)
	require.NoError(t, err)
	assert.Equal(t, "C", got)
}

func TestDecide_ConcurrentUse(t *testing.T) {
	p := newPool(t, map[string]float64{"A": 0.2, "B": 0.9, "C": 0.5}, "A", "B", "C")

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.MostConfident(instance)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, "B", r)
	}
}

func TestClassifierFunc(t *testing.T) {
	var c Classifier = ClassifierFunc(func(s string) float64 { return float64(len(s)) })
	assert.Equal(t, 3.0, c.Classify("abc"))
}
