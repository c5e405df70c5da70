package preserver

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Inside token trees the renderer prints markers as doc attributes. The
	// printer may break lines between any of the attribute tokens.
	docAttrRe = regexp.MustCompile(`#\s*\[\s*doc\s*=\s*"TEMP_DOC((?:[^"\\]|\\.)*)"\s*\]`)

	// Dummy declarations are removed wherever they appear, together with
	// their line break.
	dummyDeclRe = regexp.MustCompile(`(?m)^[ \t]*type\s+temp_marker\s*=\s*\(\s*\)\s*;[ \t]*\r?\n?`)

	markerRe = regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(Marker))
)

// Unpreserve reverses Apply on rendered text. Attribute-form markers are
// unwrapped first so that the dummy declarations following them start a line
// again, which the line-anchored passes rely on.
func Unpreserve(code string) string {
	code = unwrapDocAttributes(code)
	code = dummyDeclRe.ReplaceAllString(code, "")
	return markerRe.ReplaceAllString(code, "")
}

// unwrapDocAttributes puts the payload of every #[doc = "TEMP_DOC..."]
// attribute back on a line of its own. Indentation the printer placed before
// the attribute is dropped; the payload carries the original one.
func unwrapDocAttributes(code string) string {
	matches := docAttrRe.FindAllStringSubmatchIndex(code, -1)
	if len(matches) == 0 {
		return code
	}

	var out strings.Builder
	out.Grow(len(code))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		lineStart := strings.LastIndexByte(code[:start], '\n') + 1
		if lineStart >= last && strings.TrimSpace(code[lineStart:start]) == "" {
			out.WriteString(code[last:lineStart])
		} else {
			out.WriteString(code[last:start])
			out.WriteByte('\n')
		}

		out.WriteString(unescapeDoc(code[m[2]:m[3]]))

		rest := code[end:]
		blank := len(rest) - len(strings.TrimLeft(rest, " \t"))
		switch {
		case blank == len(rest):
			end = len(code)
		case rest[blank] == '\n' || rest[blank] == '\r':
			end += blank
		default:
			// The next token starts the following line at column zero.
			end += blank
			out.WriteByte('\n')
		}
		last = end
	}
	out.WriteString(code[last:])
	return out.String()
}

// unescapeDoc decodes the string literal body of a doc attribute. Bodies the
// Go unquoter does not understand are kept as written.
func unescapeDoc(body string) string {
	s, err := strconv.Unquote(`"` + body + `"`)
	if err != nil {
		return body
	}
	return s
}
