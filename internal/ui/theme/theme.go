package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Tree view
var (
	// Label is a node's grammatical category.
	Label = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	// Decoration is an additional label such as LOCATION or FOCUS-LOC.
	Decoration = lipgloss.NewStyle().
			Foreground(Secondary)

	// Relational highlights the relational tag.
	Relational = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Word is a token's text.
	Word = lipgloss.NewStyle().
		Foreground(Text)

	// Guide draws the branch lines.
	Guide = lipgloss.NewStyle().
		Foreground(Border)

	// Span shows character offsets.
	Span = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Decision output
var (
	Category = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Score = lipgloss.NewStyle().
		Foreground(TextDim)
)
