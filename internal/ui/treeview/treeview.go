// Package treeview renders a decorated tree as an indented outline.
package treeview

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/qcri/qfmark/internal/tree"
	"github.com/qcri/qfmark/internal/ui/theme"
)

// Styler styles a fragment of the outline. A nil Styler leaves text as is.
type Styler func(s string) string

func (f Styler) apply(s string) string {
	if f == nil || s == "" {
		return s
	}
	return f(s)
}

// Styles holds one Styler per outline element.
type Styles struct {
	Label      Styler
	Decoration Styler
	Relational Styler
	Word       Styler
	Guide      Styler
	Span       Styler
}

// Themed returns the lipgloss styles from the theme package.
func Themed() Styles {
	return Styles{
		Label:      styled(theme.Label),
		Decoration: styled(theme.Decoration),
		Relational: styled(theme.Relational),
		Word:       styled(theme.Word),
		Guide:      styled(theme.Guide),
		Span:       styled(theme.Span),
	}
}

func styled(s lipgloss.Style) Styler {
	return func(text string) string { return s.Render(text) }
}

// Render draws t one node per line:
//
//	S [0,25)
//	├── NP [0,10)
//	│   ├── DT [0,3)
//	│   │   └── The [0,3)
func Render(t *tree.Tree, st Styles) string {
	var b strings.Builder
	renderNode(&b, t, t.Root(), "", "", st)
	return b.String()
}

func renderNode(b *strings.Builder, t *tree.Tree, id tree.NodeID, lead, childLead string, st Styles) {
	n := t.Node(id)
	b.WriteString(st.Guide.apply(lead))
	if n.Relational {
		b.WriteString(st.Relational.apply(tree.RelationalPrefix))
	}
	if n.IsLeaf() {
		b.WriteString(st.Word.apply(n.Label))
	} else {
		b.WriteString(st.Label.apply(n.Label))
	}
	for _, l := range n.Labels() {
		b.WriteString(st.Decoration.apply("-" + l))
	}
	b.WriteByte(' ')
	b.WriteString(st.Span.apply(n.Span.String()))
	b.WriteByte('\n')

	for i, c := range n.Children {
		if i == len(n.Children)-1 {
			renderNode(b, t, c, childLead+"└── ", childLead+"    ", st)
		} else {
			renderNode(b, t, c, childLead+"├── ", childLead+"│   ", st)
		}
	}
}
