// Package marker decorates question trees with semantic labels. Annotation
// spans (named entities, the question focus) are mapped onto the tokens
// they cover and a Strategy picks which ancestors receive the label.
//
// Annotations that cover no token, and strategies that find too few
// ancestors, are silent no-ops: parser and recognizer noise is expected.
// Trees must pass tree.Validate; marking never edits tree structure.
package marker

import (
	"slices"
	"strings"

	"github.com/qcri/qfmark/internal/tree"
)

// FocusLabel marks the focus node of a question.
const FocusLabel = "FOCUS"

// NamedEntity is a typed span produced by an external recognizer.
type NamedEntity struct {
	Type string
	Span tree.Span
}

// relatedEntityTypes maps a question class to the named-entity types that
// can answer it.
var relatedEntityTypes = map[string][]string{
	"HUM":  {"PERSON", "ORGANIZATION"},
	"LOC":  {"LOCATION"},
	"NUM":  {"DATE", "TIME", "MONEY", "PERCENT"},
	"ENTY": {"PERSON"},
}

// RelatedEntityTypes returns the named-entity types related to a question
// class. Unknown classes have none.
func RelatedEntityTypes(questionClass string) []string {
	return slices.Clone(relatedEntityTypes[questionClass])
}

// AddRelationalTag sets the relational tag on every node the strategy
// selects from node.
func AddRelationalTag(t *tree.Tree, node tree.NodeID, strategy Strategy) {
	for _, id := range strategy(t, node) {
		t.Node(id).Relational = true
	}
}

// RemoveRelationalTagFromTree clears the relational tag on every node.
// Additional labels are kept.
func RemoveRelationalTagFromTree(t *tree.Tree) {
	t.ClearRelational()
}

// MarkNamedEntities labels the parent and grandparent of every token
// covered by an entity with the upper-cased entity type, suffixed with
// "-"+labelPrefix when labelPrefix is set.
func MarkNamedEntities(t *tree.Tree, entities []NamedEntity, labelPrefix string) {
	for _, ne := range entities {
		label := strings.ToUpper(ne.Type)
		if labelPrefix != "" {
			label += "-" + labelPrefix
		}
		markCovered(t, ne.Span, TwoAncestors, func(n *tree.Node) {
			n.AddLabel(label)
		})
	}
}

// MarkFocus labels the grandparent of every token covered by the focus
// span with FOCUS, or FOCUS-<CLASS> when questionClass is set, and tags
// that node as relational. Tokens without a grandparent are skipped.
func MarkFocus(t *tree.Tree, focus tree.Span, questionClass string) {
	label := FocusLabel
	if questionClass != "" {
		label += "-" + strings.ToUpper(questionClass)
	}
	markCovered(t, focus, SecondParent, func(n *tree.Node) {
		n.AddLabel(label)
		AddRelationalTag(t, n.ID, SameNode)
	})
}

// MarkNamedEntityRelatedToQuestionClass labels the grandparent of tokens
// covered by entities whose type relates to questionClass with
// FOCUS-<questionClass>.
func MarkNamedEntityRelatedToQuestionClass(t *tree.Tree, entities []NamedEntity, questionClass string) {
	related := relatedEntityTypes[questionClass]
	if len(related) == 0 {
		return
	}
	label := FocusLabel + "-" + questionClass
	for _, ne := range entities {
		if !slices.Contains(related, strings.ToUpper(ne.Type)) {
			continue
		}
		markCovered(t, ne.Span, SecondParent, func(n *tree.Node) {
			n.AddLabel(label)
		})
	}
}

// markCovered applies mark to every node the strategy selects from each
// token covered by span.
func markCovered(t *tree.Tree, span tree.Span, strategy Strategy, mark func(n *tree.Node)) {
	for _, tok := range t.TokensCovered(span) {
		for _, id := range strategy(t, tok) {
			mark(t.Node(id))
		}
	}
}
