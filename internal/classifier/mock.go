package classifier

import (
	"errors"
	"sync"
)

// Fixed is a Classifier that returns the same confidence for every
// instance.
type Fixed float64

func (f Fixed) Classify(string) float64 { return float64(f) }

// MockFactory is a deterministic Factory for testing. It serves canned
// classifiers and errors by model path and records every path requested.
type MockFactory struct {
	mu     sync.Mutex
	models map[string]Classifier
	errs   map[string]error
	Calls  []string
}

// NewMockFactory creates a MockFactory serving the given classifiers.
func NewMockFactory(models map[string]Classifier) *MockFactory {
	m := &MockFactory{
		models: make(map[string]Classifier, len(models)),
		errs:   make(map[string]error),
	}
	for path, c := range models {
		m.models[path] = c
	}
	return m
}

// SetError makes CreateClassifier fail for path.
func (m *MockFactory) SetError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[path] = err
}

// CreateClassifier returns the canned classifier for path, the canned
// error, or a not-found error.
func (m *MockFactory) CreateClassifier(path string) (Classifier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, path)
	if err, ok := m.errs[path]; ok {
		return nil, err
	}
	c, ok := m.models[path]
	if !ok {
		return nil, &ErrModelLoad{Path: path, Err: errNoMockModel}
	}
	return c, nil
}

// CallCount returns the number of CreateClassifier calls made.
func (m *MockFactory) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var errNoMockModel = errors.New("no canned model")
