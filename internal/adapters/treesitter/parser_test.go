//go:build !lean

package treesitter

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/rustwriter/syntax"
)

const inventorySource = `//! Inventory handling.

use std::collections::HashMap;

/// Items on hand.
pub struct Inventory {
    items: HashMap<String, u32>, // keyed by SKU
}

impl Inventory {
    pub fn count(&self) -> usize {
        let label = "items: \"all\"";
        let _ = (label, 'x', r#"raw"#);
        /* block */
        self.items.len()
    }
}
`

func TestParser_RoundTripsSourceExactly(t *testing.T) {
	p := NewParser()

	tree, err := p.Parse([]byte(inventorySource))
	require.NoError(t, err)
	assert.Equal(t, inventorySource, syntax.Render(tree))
	assert.Equal(t, "source_file", tree.Root.Kind)
}

func TestParser_FieldsAndNames(t *testing.T) {
	p := NewParser()

	tree, err := p.Parse([]byte(inventorySource))
	require.NoError(t, err)

	st := tree.FindItem("struct_item", "Inventory")
	require.NotNil(t, st)
	assert.Equal(t, "pub struct Inventory {\n    items: HashMap<String, u32>, // keyed by SKU\n}", st.Text())

	fn := tree.FindItem("function_item", "count")
	require.NotNil(t, fn)
	require.NotNil(t, fn.Child("body"))
	assert.Equal(t, "block", fn.Child("body").Kind)
	assert.Same(t, fn, fn.Child("body").Parent())

	impl := tree.Find("impl_item")
	require.Len(t, impl, 1)
	assert.Equal(t, "Inventory", impl[0].Child("type").Text())
}

func TestParser_AtomicLeaves(t *testing.T) {
	p := NewParser()

	tree, err := p.Parse([]byte(inventorySource))
	require.NoError(t, err)

	for _, kind := range []string{"string_literal", "raw_string_literal", "char_literal", "line_comment", "block_comment"} {
		nodes := tree.Find(kind)
		require.NotEmpty(t, nodes, kind)
		for _, n := range nodes {
			assert.True(t, n.IsLeaf(), kind)
		}
	}
	assert.Equal(t, `"items: \"all\""`, tree.Find("string_literal")[0].Value)

	comments := tree.Find("line_comment")
	assert.True(t, comments[0].Extra)
	assert.True(t, comments[0].IsComment())
}

func TestParser_DocCommentInMacroRendersAsAttribute(t *testing.T) {
	p := NewParser()
	source := "fn main() {\n    println!(\n        /// shown\n        \"{}\", 1\n    );\n}\n"

	tree, err := p.Parse([]byte(source))
	require.NoError(t, err)
	require.NotEmpty(t, tree.Find(syntax.KindTokenTree))

	out := syntax.Render(tree)
	assert.Contains(t, out, `#[doc = " shown"]`)
	assert.NotContains(t, out, "/// shown")
}

func TestParser_SyntaxError(t *testing.T) {
	p := NewParser()

	_, err := p.Parse([]byte("fn main() {\n    let x = ;\n}\n"))
	require.Error(t, err)

	var perr *syntax.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.False(t, errors.Is(err, ErrGrammarUnavailable))
}

func TestParser_MissingToken(t *testing.T) {
	p := NewParser()

	_, err := p.Parse([]byte("struct A {\n    x: u8,\n"))
	require.Error(t, err)

	var perr *syntax.ParseError
	require.True(t, errors.As(err, &perr))
	assert.GreaterOrEqual(t, perr.Line, 1)
}

func TestParser_EmptySource(t *testing.T) {
	p := NewParser()

	tree, err := p.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "", syntax.Render(tree))
}

func TestParser_MacroRulesBodyIsOpaque(t *testing.T) {
	p := NewParser()
	source := "macro_rules! pick {\n" +
		"///TEMP_DOC    // one value\n" +
		"type temp_marker = ();\n" +
		"    ($x:expr) => { $x };\n" +
		"///TEMP_DOC\n" +
		"type temp_marker = ();\n" +
		"    () => { 0 };\n" +
		"}\n" +
		"type temp_marker = ();\n"

	tree, err := p.Parse([]byte(source))
	require.NoError(t, err)
	assert.Equal(t, source, syntax.Render(tree))
	assert.Len(t, tree.Find("macro_definition"), 1)
}

func TestParser_ErrorOutsideMacroStillRejected(t *testing.T) {
	p := NewParser()
	source := "macro_rules! pick {\n" +
		"type temp_marker = ();\n" +
		"    () => { 0 };\n" +
		"}\n" +
		"fn main() {\n    let x = ;\n}\n"

	_, err := p.Parse([]byte(source))
	var perr *syntax.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 6, perr.Line)
}

func TestParser_HasLanguage(t *testing.T) {
	p := NewParser()
	assert.True(t, p.HasLanguage(Rust))
	assert.True(t, p.Builtin(Rust))
	assert.False(t, p.HasLanguage("klingon"))
	assert.False(t, p.Builtin("klingon"))
}

func TestParser_ConcurrentParses(t *testing.T) {
	p := NewParser()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := p.Parse([]byte(inventorySource))
			if err == nil && syntax.Render(tree) != inventorySource {
				err = errors.New("render mismatch")
			}
			errs[i] = err
		}()
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}
