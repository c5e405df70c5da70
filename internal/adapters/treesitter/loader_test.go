package treesitter

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates empty fake grammar libraries in dir.
func touch(t *testing.T, dir string, langs ...string) {
	t.Helper()
	for _, lang := range langs {
		f, err := os.Create(filepath.Join(dir, lang+LibExtension()))
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
}

func TestCSymbolName(t *testing.T) {
	tests := []struct {
		lang     string
		expected string
	}{
		{"rust", "tree_sitter_rust"},
		{"rust-with-macros", "tree_sitter_rust_with_macros"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.expected, CSymbolName(tt.lang))
		})
	}
}

func TestLibExtension(t *testing.T) {
	ext := LibExtension()
	switch runtime.GOOS {
	case "darwin":
		assert.Equal(t, ".dylib", ext)
	default:
		assert.Equal(t, ".so", ext)
	}
}

func TestDefaultGrammarPaths(t *testing.T) {
	paths := DefaultGrammarPaths("/project/root")
	require.GreaterOrEqual(t, len(paths), 1)
	assert.Equal(t, "/project/root/.rustwriter/grammars", paths[0])

	// Global path should be second
	if len(paths) > 1 {
		home, _ := os.UserHomeDir()
		assert.Equal(t, filepath.Join(home, ".rustwriter", "grammars"), paths[1])
	}
}

func TestDefaultGrammarPaths_EmptyRoot(t *testing.T) {
	paths := DefaultGrammarPaths("")
	if home, err := os.UserHomeDir(); err == nil {
		require.Len(t, paths, 1)
		assert.Equal(t, filepath.Join(home, ".rustwriter", "grammars"), paths[0])
	}
}

func TestDynamicLoader_LoadGrammar_NotFound(t *testing.T) {
	dl := NewDynamicLoader([]string{"/nonexistent/path"})
	_, err := dl.LoadGrammar(Rust)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in search paths")
}

func TestDynamicLoader_LoadGrammar_NotALibrary(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, Rust)

	dl := NewDynamicLoader([]string{dir})
	_, err := dl.LoadGrammar(Rust)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dlopen")
}

func TestDynamicLoader_GrammarPath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, Rust)

	dl := NewDynamicLoader([]string{"/nonexistent/path", dir})
	assert.Equal(t, filepath.Join(dir, Rust+LibExtension()), dl.GrammarPath(Rust))
	assert.Equal(t, "", dl.GrammarPath("python"))
}

func TestDynamicLoader_SearchPathPriority(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	touch(t, dir1, Rust)
	touch(t, dir2, Rust)

	dl := NewDynamicLoader([]string{dir1, dir2})
	assert.Equal(t, filepath.Join(dir1, Rust+LibExtension()), dl.GrammarPath(Rust))
}

func TestDynamicLoader_InstalledGrammars(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	touch(t, dir1, "rust", "toml")
	touch(t, dir2, "rust")
	require.NoError(t, os.Mkdir(filepath.Join(dir2, "nested"+LibExtension()), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir2, "README.md"), nil, 0o644))

	dl := NewDynamicLoader([]string{dir1, dir2, "/nonexistent/path"})
	assert.Equal(t, []string{"rust", "toml"}, dl.InstalledGrammars())
	assert.Empty(t, NewDynamicLoader([]string{t.TempDir()}).InstalledGrammars())
}

func TestParser_SetGrammarPaths(t *testing.T) {
	p := NewParser()
	assert.Nil(t, p.Loader())

	p.SetGrammarPaths([]string{"/tmp/grammars"})
	require.NotNil(t, p.Loader())
	assert.Equal(t, []string{"/tmp/grammars"}, p.Loader().SearchPaths())
}

func TestParser_HasLanguage_WithLoader(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "ron")

	p := NewParser()
	assert.False(t, p.HasLanguage("ron"))

	p.SetGrammarPaths([]string{dir})
	assert.True(t, p.HasLanguage("ron"))
	assert.False(t, p.Builtin("ron"))
	assert.False(t, p.HasLanguage("nonexistent"))
}
