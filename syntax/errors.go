package syntax

import "fmt"

// ParseError is how parsers report that the text was rejected by the grammar.
// Line and Column are 1-based and point at the first offending node.
type ParseError struct {
	Line   int
	Column int
	Kind   string // "ERROR" or the kind of the missing node
}

func (e *ParseError) Error() string {
	if e.Kind == "" || e.Kind == "ERROR" {
		return fmt.Sprintf("syntax error at %d:%d", e.Line, e.Column)
	}
	return fmt.Sprintf("syntax error at %d:%d: missing %s", e.Line, e.Column, e.Kind)
}
