package tree

import "fmt"

// ErrSyntax reports malformed bracketed input.
type ErrSyntax struct {
	Offset int
	Msg    string
}

func (e *ErrSyntax) Error() string {
	return fmt.Sprintf("tree syntax error at offset %d: %s", e.Offset, e.Msg)
}

// ErrTokenAlignment indicates a token could not be located in the source
// text.
type ErrTokenAlignment struct {
	Token string
	From  int
}

func (e *ErrTokenAlignment) Error() string {
	return fmt.Sprintf("token %q not found in text after offset %d", e.Token, e.From)
}

// ErrInvalidSpan indicates a node whose span ends before it begins.
type ErrInvalidSpan struct {
	Node  NodeID
	Label string
	Span  Span
}

func (e *ErrInvalidSpan) Error() string {
	return fmt.Sprintf("node %d (%s) has invalid span %s", e.Node, e.Label, e.Span)
}

// ErrSpanContainment indicates a child span that escapes its parent.
type ErrSpanContainment struct {
	Parent     NodeID
	Child      NodeID
	ParentSpan Span
	ChildSpan  Span
}

func (e *ErrSpanContainment) Error() string {
	return fmt.Sprintf("child %d span %s is not contained in parent %d span %s",
		e.Child, e.ChildSpan, e.Parent, e.ParentSpan)
}
