package classifier

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"sync"
)

// OneVsAll holds one binary classifier per category and picks the category
// whose classifier is most confident.
//
// The pool is assembled at startup with AddModel or Build. Once built it is
// safe for concurrent Decide/MostConfident calls, provided every contained
// Classifier is itself safe for concurrent use.
type OneVsAll struct {
	factory Factory
	logger  *slog.Logger

	mu     sync.RWMutex
	ids    []string // insertion order
	models map[string]Classifier
}

// Option configures a OneVsAll.
type Option func(*OneVsAll)

// WithLogger sets the logger used for model loading and decisions.
func WithLogger(l *slog.Logger) Option {
	return func(p *OneVsAll) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewOneVsAll creates an empty pool whose models are built by factory.
func NewOneVsAll(factory Factory, opts ...Option) *OneVsAll {
	p := &OneVsAll{
		factory: factory,
		logger:  slog.Default(),
		models:  make(map[string]Classifier),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Entry names a category and the model artifact for its classifier.
type Entry struct {
	ID   string
	Path string
}

// Build creates a pool from entries in order. It stops at the first model
// that fails to load; a partially built pool is never returned.
func Build(factory Factory, entries []Entry, opts ...Option) (*OneVsAll, error) {
	p := NewOneVsAll(factory, opts...)
	for _, e := range entries {
		if err := p.AddModel(e.ID, e.Path); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddModel builds the classifier at modelPath and registers it under id.
// Re-adding an id replaces its model and keeps its original position in
// the tie-break order.
func (p *OneVsAll) AddModel(id, modelPath string) error {
	c, err := p.factory.CreateClassifier(modelPath)
	if err == nil && isNil(c) {
		err = errors.New("factory returned no classifier")
	}
	if err != nil {
		var loadErr *ErrModelLoad
		if errors.As(err, &loadErr) {
			return &ErrModelLoad{ID: id, Path: loadErr.Path, Err: loadErr.Err}
		}
		return &ErrModelLoad{ID: id, Path: modelPath, Err: err}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.models[id]; ok {
		p.logger.Debug("replacing model", slog.String("id", id), slog.String("path", modelPath))
	} else {
		p.ids = append(p.ids, id)
		p.logger.Debug("loaded model", slog.String("id", id), slog.String("path", modelPath))
	}
	p.models[id] = c
	return nil
}

// isNil reports whether c is nil or an interface holding a nil pointer,
// map, func or similar.
func isNil(c Classifier) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Len returns the number of categories in the pool.
func (p *OneVsAll) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.ids)
}

// IDs returns the categories in insertion order.
func (p *OneVsAll) IDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.ids))
	copy(out, p.ids)
	return out
}

// Scores returns every classifier's confidence for instance, in insertion
// order.
func (p *OneVsAll) Scores(instance string) []Score {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Score, len(p.ids))
	for i, id := range p.ids {
		out[i] = Score{ID: id, Confidence: p.models[id].Classify(instance)}
	}
	return out
}

// MostConfident returns the id of the classifier with the highest
// confidence for instance. See Decide for tie and empty-pool handling.
func (p *OneVsAll) MostConfident(instance string) (string, error) {
	d, err := p.Decide(instance)
	if err != nil {
		return "", err
	}
	return d.ID, nil
}

// Decide queries every classifier with instance and returns the strict
// maximum. Ties go to the earliest-inserted id. NaN scores never win unless
// every score is NaN, in which case the earliest id is returned. An empty
// pool returns ErrNoModels.
func (p *OneVsAll) Decide(instance string) (Decision, error) {
	scores := p.Scores(instance)
	if len(scores) == 0 {
		return Decision{}, ErrNoModels
	}

	best := -1
	for i, s := range scores {
		if math.IsNaN(s.Confidence) {
			continue
		}
		if best < 0 || s.Confidence > scores[best].Confidence {
			best = i
		}
	}
	if best < 0 {
		best = 0
	}

	d := Decision{ID: scores[best].ID, Confidence: scores[best].Confidence, Scores: scores}
	p.logger.Debug("classified instance",
		slog.String("category", d.ID),
		slog.Float64("confidence", d.Confidence),
		slog.Int("models", len(scores)),
	)
	return d, nil
}

// String summarizes the pool for logs.
func (p *OneVsAll) String() string {
	return fmt.Sprintf("OneVsAll%v", p.IDs())
}
