package preserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpreserve_InvertsApply(t *testing.T) {
	original := readFixture(t, "complete_file.rs")
	assert.Equal(t, original, Unpreserve(Apply(original, fixturePreservers())))
}

func TestUnpreserve_RemovesAllPlaceholders(t *testing.T) {
	got := Unpreserve(readFixture(t, "preserved_file.rs"))
	assert.NotContains(t, got, "TEMP_DOC")
	assert.NotContains(t, got, "temp_marker")
}

func TestUnpreserve(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text",
			in:   "fn main() {}\n",
			want: "fn main() {}\n",
		},
		{
			name: "marker lines",
			in:   "///TEMP_DOCuse std::fmt;\n///TEMP_DOC\nfn f() {}\n",
			want: "use std::fmt;\n\nfn f() {}\n",
		},
		{
			name: "indented marker",
			in:   "    ///TEMP_DOC    // note\n",
			want: "    // note\n",
		},
		{
			name: "dummy lines",
			in:   "fn f() {\n    type temp_marker = ();\n}\ntype temp_marker = ();",
			want: "fn f() {\n}\n",
		},
		{
			name: "reformatted dummy",
			in:   "type temp_marker=( );\r\nfn f() {}\r\n",
			want: "fn f() {}\r\n",
		},
		{
			name: "doc attribute on its own line",
			in:   "m!(\n#[doc = \"TEMP_DOC        // the pair\"]\ntype temp_marker = ();\n    x\n);\n",
			want: "m!(\n        // the pair\n    x\n);\n",
		},
		{
			name: "indented doc attribute",
			in:   "m!(\n        #[doc = \"TEMP_DOC    // c\"]\n    x\n);\n",
			want: "m!(\n    // c\n    x\n);\n",
		},
		{
			name: "doc attribute after tokens",
			in:   "m!(a, #[doc=\"TEMP_DOC    // c\"] b);\n",
			want: "m!(a, \n    // c\nb);\n",
		},
		{
			name: "escaped payload",
			in:   "m!(\n#[doc = \"TEMP_DOC    let s = \\\"x\\\\y\\\";\"]\n);\n",
			want: "m!(\n    let s = \"x\\y\";\n);\n",
		},
		{
			name: "attribute at end of input",
			in:   "#[doc = \"TEMP_DOC// end\"]  ",
			want: "// end",
		},
		{
			name: "attribute before CRLF",
			in:   "#[doc = \"TEMP_DOC// a\"] \r\nx\r\n",
			want: "// a\r\nx\r\n",
		},
		{
			name: "other doc attributes untouched",
			in:   "#[doc = \"real docs\"]\nstruct A;\n",
			want: "#[doc = \"real docs\"]\nstruct A;\n",
		},
		{
			name: "marker text mid line untouched",
			in:   "let s = \"///TEMP_DOC\";\n",
			want: "let s = \"///TEMP_DOC\";\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unpreserve(tt.in))
		})
	}
}

func TestUnescapeDoc(t *testing.T) {
	assert.Equal(t, `a "b"`, unescapeDoc(`a \"b\"`))
	assert.Equal(t, "tab\there", unescapeDoc(`tab\there`))
	assert.Equal(t, `bad \q escape`, unescapeDoc(`bad \q escape`))
}

func TestUnpreserve_LeavesNoBlankDummyLines(t *testing.T) {
	got := Unpreserve(Apply("fn main() {\n    // a\n    run();\n}\n", []*Preserver{NewPreserver("fn main")}))
	assert.Equal(t, "fn main() {\n    // a\n    run();\n}\n", got)
	assert.False(t, strings.Contains(got, "\n\n"))
}
