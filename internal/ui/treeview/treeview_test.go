package treeview

import (
	"strings"
	"testing"

	"github.com/qcri/qfmark/internal/marker"
	"github.com/qcri/qfmark/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Plain(t *testing.T) {
	tr, err := tree.Parse("(S (NP (DT The)(NN winner))(VP (VBZ lives)))", "")
	require.NoError(t, err)
	marker.MarkFocus(tr, tree.Span{Begin: 4, End: 10}, "HUM")

	want := strings.Join([]string{
		"S [0,16)",
		"├── REL-NP-FOCUS-HUM [0,10)",
		"│   ├── DT [0,3)",
		"│   │   └── The [0,3)",
		"│   └── NN [4,10)",
		"│       └── winner [4,10)",
		"└── VP [11,16)",
		"    └── VBZ [11,16)",
		"        └── lives [11,16)",
	}, "\n") + "\n"
	assert.Equal(t, want, Render(tr, Styles{}))
}

func TestRender_StylersApplied(t *testing.T) {
	tr, err := tree.Parse("(NP (NNP Chile))", "")
	require.NoError(t, err)
	tr.Node(tr.Root()).AddLabel("LOCATION")

	upper := Styler(strings.ToUpper)
	bracket := Styler(func(s string) string { return "<" + s + ">" })
	got := Render(tr, Styles{Word: upper, Decoration: bracket, Span: bracket})
	assert.Equal(t, "NP<-LOCATION> <[0,5)>\n└── NNP <[0,5)>\n    └── CHILE <[0,5)>\n", got)
}

func TestThemed(t *testing.T) {
	st := Themed()
	assert.NotNil(t, st.Label)
	assert.NotNil(t, st.Guide)
	tr, err := tree.Parse("(NP (NNP Chile))", "")
	require.NoError(t, err)
	assert.Contains(t, Render(tr, st), "Chile")
}
