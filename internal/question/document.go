// Package question loads question documents (a parsed tree plus external
// annotations) and drives the marker over them.
package question

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qcri/qfmark/internal/marker"
	"github.com/qcri/qfmark/internal/tree"
	"gopkg.in/yaml.v3"
)

// Document is a question tree with the annotations produced for it by an
// external parser, recognizer, or gold-data loader. Offsets are byte
// offsets into Text, or into the space-joined tokens when Text is empty.
type Document struct {
	ID       string   `json:"id"`
	Text     string   `json:"text,omitempty"`
	Tree     string   `json:"tree"`
	Entities []Entity `json:"entities,omitempty"`
	Focus    *Span    `json:"focus,omitempty"`
	Class    string   `json:"class,omitempty"`
}

// Span is a serialized [begin, end) range.
type Span struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

func (s Span) toTree() tree.Span {
	return tree.Span{Begin: s.Begin, End: s.End}
}

// Entity is a serialized named-entity annotation.
type Entity struct {
	Type  string `json:"type"`
	Begin int    `json:"begin"`
	End   int    `json:"end"`
}

// NamedEntities converts the document's entities for the marker.
func (d *Document) NamedEntities() []marker.NamedEntity {
	out := make([]marker.NamedEntity, len(d.Entities))
	for i, e := range d.Entities {
		out[i] = marker.NamedEntity{Type: e.Type, Span: tree.Span{Begin: e.Begin, End: e.End}}
	}
	return out
}

// ErrInvalidDocument reports a document that fails validation.
type ErrInvalidDocument struct {
	Source string
	Err    error
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("invalid question document %s: %v", e.Source, e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error { return e.Err }

// Decode parses a YAML or JSON question document and validates it.
// source names the document in errors.
func Decode(data []byte, source string) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ErrInvalidDocument{Source: source, Err: err}
	}
	// Normalize to JSON values so the schema and decoder see one shape.
	js, err := json.Marshal(raw)
	if err != nil {
		return nil, &ErrInvalidDocument{Source: source, Err: err}
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return nil, &ErrInvalidDocument{Source: source, Err: err}
	}
	if err := validate(v); err != nil {
		return nil, &ErrInvalidDocument{Source: source, Err: err}
	}

	var doc Document
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, &ErrInvalidDocument{Source: source, Err: err}
	}
	if err := doc.checkSpans(); err != nil {
		return nil, &ErrInvalidDocument{Source: source, Err: err}
	}
	return &doc, nil
}

func (d *Document) checkSpans() error {
	for i, e := range d.Entities {
		if e.End < e.Begin {
			return fmt.Errorf("entity %d (%s) ends before it begins", i, e.Type)
		}
	}
	if d.Focus != nil && d.Focus.End < d.Focus.Begin {
		return fmt.Errorf("focus ends before it begins")
	}
	return nil
}

// LoadFile reads and decodes a single document.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question document: %w", err)
	}
	return Decode(data, path)
}

// documentExts lists the file extensions LoadAll picks up from directories.
var documentExts = map[string]bool{".yaml": true, ".yml": true, ".json": true}

// LoadAll loads documents from files and directories. Directory entries
// are read in name order, non-recursively, keeping only YAML and JSON
// files.
func LoadAll(paths ...string) ([]*Document, error) {
	var docs []*Document
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		files := []string{p}
		if info.IsDir() {
			files, err = documentFiles(p)
			if err != nil {
				return nil, err
			}
		}
		for _, f := range files {
			doc, err := LoadFile(f)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func documentFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !documentExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
