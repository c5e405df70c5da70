package preserver

import "strings"

// chainSeparator joins the lookups of a chain in String and ParseChain. The
// surrounding spaces keep "->" and generic brackets inside lookups intact.
const chainSeparator = " > "

// Preserver selects the source lines that are kept as real code.
//
// A line is claimed when, with leading whitespace removed, it starts with
// the lookup. The block the claimed line opens is preserved as a whole,
// unless the preserver has an inner preserver: then only the part of the
// block claimed by the inner preserver is real code, recursively.
type Preserver struct {
	lookup string
	inner  *Preserver
}

// NewPreserver returns a preserver claiming lines that start with lookup.
func NewPreserver(lookup string) *Preserver {
	return &Preserver{lookup: lookup}
}

// AddInners replaces the chain below p with one level per lookup, outermost
// first. Calling it with no lookups leaves p unchanged.
func (p *Preserver) AddInners(lookups ...string) *Preserver {
	if len(lookups) == 0 {
		return p
	}
	current := p
	for _, lookup := range lookups {
		current.inner = NewPreserver(lookup)
		current = current.inner
	}
	return p
}

// Lookup returns the line prefix p claims.
func (p *Preserver) Lookup() string {
	return p.lookup
}

// Inner returns the nested preserver, or nil.
func (p *Preserver) Inner() *Preserver {
	return p.inner
}

// TakeInner detaches the nested preserver and returns it.
func (p *Preserver) TakeInner() *Preserver {
	inner := p.inner
	p.inner = nil
	return inner
}

// Depth returns the number of levels in the chain starting at p.
func (p *Preserver) Depth() int {
	depth := 0
	for current := p; current != nil; current = current.inner {
		depth++
	}
	return depth
}

// String renders the chain as "outer > inner > ...".
func (p *Preserver) String() string {
	var parts []string
	for current := p; current != nil; current = current.inner {
		parts = append(parts, current.lookup)
	}
	return strings.Join(parts, chainSeparator)
}

// ParseChain is the inverse of String. Segments are trimmed and empty ones
// skipped; nil is returned when nothing is left.
func ParseChain(s string) *Preserver {
	var lookups []string
	for _, part := range strings.Split(s, chainSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			lookups = append(lookups, part)
		}
	}
	if len(lookups) == 0 {
		return nil
	}
	return NewPreserver(lookups[0]).AddInners(lookups[1:]...)
}
