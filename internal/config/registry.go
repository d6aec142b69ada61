package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/qcri/qfmark/internal/classifier"
	"gopkg.in/yaml.v3"
)

// Registry lists the one-vs-all models, one per category. Order matters:
// it is the pool's tie-break order.
type Registry struct {
	Models []ModelEntry `yaml:"models"`
}

// ModelEntry binds a category to a model artifact.
type ModelEntry struct {
	Category string `yaml:"category"`
	Path     string `yaml:"path"`
}

// LoadRegistry reads a registry file. Relative model paths resolve against
// the registry's directory.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model registry: %w", err)
	}

	var reg Registry
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&reg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse model registry %s: %w", path, err)
	}
	if err := reg.validate(); err != nil {
		return nil, fmt.Errorf("model registry %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range reg.Models {
		if !filepath.IsAbs(reg.Models[i].Path) {
			reg.Models[i].Path = filepath.Join(base, reg.Models[i].Path)
		}
	}
	return &reg, nil
}

func (r *Registry) validate() error {
	if len(r.Models) == 0 {
		return errors.New("no models listed")
	}
	seen := make(map[string]bool, len(r.Models))
	for i, m := range r.Models {
		if m.Category == "" {
			return fmt.Errorf("model %d: category is required", i)
		}
		if m.Path == "" {
			return fmt.Errorf("model %q: path is required", m.Category)
		}
		if seen[m.Category] {
			return fmt.Errorf("category %q listed twice", m.Category)
		}
		seen[m.Category] = true
	}
	return nil
}

// Entries returns the registry as ordered pool entries.
func (r *Registry) Entries() []classifier.Entry {
	out := make([]classifier.Entry, len(r.Models))
	for i, m := range r.Models {
		out[i] = classifier.Entry{ID: m.Category, Path: m.Path}
	}
	return out
}
