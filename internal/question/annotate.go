package question

import (
	"fmt"

	"github.com/qcri/qfmark/internal/marker"
	"github.com/qcri/qfmark/internal/tree"
)

// Options selects which markings Annotate applies.
type Options struct {
	// NamedEntityPrefix is appended to named-entity labels as "-<prefix>".
	NamedEntityPrefix string

	// FocusWithClass labels the focus FOCUS-<CLASS> instead of FOCUS when
	// the document carries a class.
	FocusWithClass bool

	// MarkRelated marks entities related to the document's class.
	MarkRelated bool
}

// Annotate parses the document's tree and decorates it: named entities,
// then the focus, then entities related to the question class.
func Annotate(doc *Document, opts Options) (*tree.Tree, error) {
	t, err := tree.Parse(doc.Tree, doc.Text)
	if err != nil {
		return nil, fmt.Errorf("parse tree of %s: %w", doc.ID, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tree of %s: %w", doc.ID, err)
	}

	entities := doc.NamedEntities()
	marker.MarkNamedEntities(t, entities, opts.NamedEntityPrefix)

	if doc.Focus != nil {
		class := ""
		if opts.FocusWithClass {
			class = doc.Class
		}
		marker.MarkFocus(t, doc.Focus.toTree(), class)
	}

	if opts.MarkRelated && doc.Class != "" {
		marker.MarkNamedEntityRelatedToQuestionClass(t, entities, doc.Class)
	}
	return t, nil
}

// Instance annotates the document and returns the decorated tree in the
// serialized form the classifiers consume. The result must read back as
// the same tree; a decoration that breaks the bracketing is an error.
func Instance(doc *Document, opts Options) (string, error) {
	t, err := Annotate(doc, opts)
	if err != nil {
		return "", err
	}
	s := t.String()
	back, err := tree.Parse(s, "")
	if err != nil {
		return "", fmt.Errorf("decorated tree of %s: %w", doc.ID, err)
	}
	if back.Len() != t.Len() {
		return "", fmt.Errorf("decorated tree of %s: labels split into %d nodes, want %d",
			doc.ID, back.Len(), t.Len())
	}
	return s, nil
}
