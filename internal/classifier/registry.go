package classifier

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Decoder turns the contents of a model file into a Classifier.
type Decoder func(data []byte) (Classifier, error)

var (
	kindsMu sync.RWMutex
	kinds   = map[string]Decoder{
		KindLinear: decodeLinear,
	}
)

// RegisterKind makes a model kind available to LoadModel. It panics if
// the kind is already registered or dec is nil.
func RegisterKind(kind string, dec Decoder) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	if dec == nil {
		panic("classifier: RegisterKind decoder is nil")
	}
	if _, dup := kinds[kind]; dup {
		panic("classifier: RegisterKind called twice for kind " + kind)
	}
	kinds[kind] = dec
}

// Kinds returns the registered model kinds, sorted.
func Kinds() []string {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// modelHeader is the part of a model file common to every kind.
type modelHeader struct {
	Kind string `yaml:"kind"`
}

// LoadModel reads the model file at path and decodes it with the decoder
// registered for its kind. Every failure is returned as *ErrModelLoad.
func LoadModel(path string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrModelLoad{Path: path, Err: err}
	}

	var h modelHeader
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, &ErrModelLoad{Path: path, Err: fmt.Errorf("parse model header: %w", err)}
	}
	if h.Kind == "" {
		return nil, &ErrModelLoad{Path: path, Err: fmt.Errorf("model kind is required")}
	}

	kindsMu.RLock()
	dec, ok := kinds[h.Kind]
	kindsMu.RUnlock()
	if !ok {
		return nil, &ErrModelLoad{Path: path, Err: fmt.Errorf("%w: %q", ErrUnknownKind, h.Kind)}
	}

	c, err := dec(data)
	if err != nil {
		return nil, &ErrModelLoad{Path: path, Err: err}
	}
	return c, nil
}

// DefaultFactory builds classifiers from model files through LoadModel.
var DefaultFactory Factory = FactoryFunc(LoadModel)
