package preserver

import (
	"strings"
	"unicode"
)

const (
	// Marker starts every placeholder line. It is an outer doc comment, so
	// the parser keeps it in the tree attached to the next item.
	Marker = "///TEMP_DOC"

	// DummyDecl gives placeholder doc comments an item to document. It also
	// closes every scope so trailing markers always have an anchor.
	DummyDecl = "type temp_marker = ();"
)

// Apply rewrites code so that only the lines claimed by preservers stay real
// code. Everything else becomes Marker lines (plus DummyDecl anchors where a
// marker sits inside a block), which the parser accepts as documented dummy
// items and Unpreserve turns back into the original text.
//
// Apply never fails. A claimed block that never closes is cut at end of
// input, which leaves the output unbalanced; parsing it is what reports the
// problem.
func Apply(code string, preservers []*Preserver) string {
	lines := splitLines(code)

	var out strings.Builder
	out.Grow(2 * len(code))

	var balance delimitersCount
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)

		if p := claim(preservers, trimmed); p != nil {
			balance.count(line)
			writeLine(&out, line)

			// A one-line block has no interior to narrow down.
			if p.inner == nil || balance.complete() {
				continue
			}

			var inner strings.Builder
			for i+1 < len(lines) {
				i++
				balance.count(lines[i])
				if balance.complete() {
					out.WriteString(Apply(inner.String(), []*Preserver{p.inner}))
					writeLine(&out, lines[i])
					break
				}
				writeLine(&inner, lines[i])
			}
			continue
		}

		if balance.complete() {
			// Outside every block: the whole line, including any block it
			// opens, turns into doc comments. It is not counted.
			writeLine(&out, Marker+line)
			continue
		}

		switch {
		case isPlainComment(trimmed) || strings.HasPrefix(trimmed, "#!["):
			writeLine(&out, Marker+line)
			writeLine(&out, DummyDecl)
		case trimmed == "":
			writeLine(&out, Marker)
			writeLine(&out, DummyDecl)
		default:
			writeLine(&out, line)
		}
		balance.count(line)
	}

	writeLine(&out, DummyDecl)
	return out.String()
}

// claim returns the first preserver whose lookup prefixes trimmed.
func claim(preservers []*Preserver, trimmed string) *Preserver {
	for _, p := range preservers {
		if p != nil && strings.HasPrefix(trimmed, p.lookup) {
			return p
		}
	}
	return nil
}

// isPlainComment matches "//" comments that are not doc comments.
func isPlainComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") &&
		!strings.HasPrefix(trimmed, "///") &&
		!strings.HasPrefix(trimmed, "//!")
}

// splitLines splits on "\n", drops a trailing "\r" from each line and does not
// report an empty line after a final newline.
func splitLines(code string) []string {
	if code == "" {
		return nil
	}
	lines := strings.Split(code, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func writeLine(sb *strings.Builder, line string) {
	sb.WriteString(line)
	sb.WriteByte('\n')
}
