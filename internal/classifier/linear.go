package classifier

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/qcri/qfmark/internal/tree"
	"gopkg.in/yaml.v3"
)

// KindLinear is the model kind of Linear.
const KindLinear = "linear"

// Tree markers used by SVM-light style tree instances.
const (
	beginTree = "|BT|"
	endTree   = "|ET|"
)

// Linear scores an instance as bias plus the weighted count of its tree
// fragments. It is immutable after loading and safe for concurrent use.
type Linear struct {
	Bias    float64            `yaml:"bias"`
	Weights map[string]float64 `yaml:"weights"`
}

// Classify implements Classifier. An instance that is not a well-formed
// tree is logged and scores the bias.
func (m *Linear) Classify(instance string) float64 {
	score := m.Bias
	frags, err := Fragments(instance)
	if err != nil {
		slog.Warn("linear model: malformed instance", slog.Any("error", err))
		return score
	}
	for f, n := range frags {
		score += m.Weights[f] * float64(n)
	}
	return score
}

func decodeLinear(data []byte) (Classifier, error) {
	var m Linear
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse linear model: %w", err)
	}
	return &m, nil
}

// Fragments counts the fragments of a serialized tree instance: every
// decorated node label, and every production "LABEL -> CHILD ...". The
// optional |BT| and |ET| markers are ignored.
func Fragments(instance string) (map[string]int, error) {
	s := strings.TrimSpace(instance)
	s = strings.TrimPrefix(s, beginTree)
	s = strings.TrimSuffix(s, endTree)

	t, err := tree.Parse(strings.TrimSpace(s), "")
	if err != nil {
		return nil, fmt.Errorf("fragments: %w", err)
	}

	out := make(map[string]int)
	t.Walk(func(n *tree.Node) bool {
		if n.IsLeaf() {
			return true
		}
		out[n.Label]++
		kids := make([]string, len(n.Children))
		for i, c := range n.Children {
			kids[i] = t.Node(c).Label
		}
		out[n.Label+" -> "+strings.Join(kids, " ")]++
		return true
	})
	return out, nil
}
