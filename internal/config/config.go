// Package config loads the per-crate .rustwriter.yaml file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/corey/rustwriter/preserver"
)

// FileName is the config file looked up by Find.
const FileName = ".rustwriter.yaml"

// Config is the YAML-serialized project configuration. Relative paths are
// resolved against Dir, the directory holding the config file.
type Config struct {
	// Preservers are chains in "outer > inner" form, see preserver.ParseChain.
	Preservers  []string `yaml:"preservers"`
	Files       []string `yaml:"files,omitempty"`
	GrammarDirs []string `yaml:"grammar_dirs,omitempty"`

	Dir string `yaml:"-"`
}

// Load reads and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.Dir = abs
	return &cfg, nil
}

// Find loads root/.rustwriter.yaml. A missing file yields an empty config
// rooted at root, not an error.
func Find(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		abs, absErr := filepath.Abs(root)
		if absErr != nil {
			return nil, absErr
		}
		return &Config{Dir: abs}, nil
	}
	return cfg, err
}

// Validate rejects chains that have no lookup at all.
func (c *Config) Validate() error {
	for i, chain := range c.Preservers {
		if preserver.ParseChain(chain) == nil {
			return fmt.Errorf("preservers[%d]: empty chain %q", i, chain)
		}
	}
	for i, f := range c.Files {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("files[%d]: empty path", i)
		}
	}
	return nil
}

// BuildPreservers parses the configured chains followed by extra ones
// (e.g. from the command line). Empty extra chains are rejected too.
func (c *Config) BuildPreservers(extra ...string) ([]*preserver.Preserver, error) {
	chains := append(append([]string(nil), c.Preservers...), extra...)
	out := make([]*preserver.Preserver, 0, len(chains))
	for _, chain := range chains {
		p := preserver.ParseChain(chain)
		if p == nil {
			return nil, fmt.Errorf("empty preserver chain %q", chain)
		}
		out = append(out, p)
	}
	return out, nil
}

// ResolvedFiles returns the configured files as absolute paths.
func (c *Config) ResolvedFiles() []string {
	return c.resolve(c.Files)
}

// ResolvedGrammarDirs returns the configured grammar directories as
// absolute paths, in configured order.
func (c *Config) ResolvedGrammarDirs() []string {
	return c.resolve(c.GrammarDirs)
}

func (c *Config) resolve(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir, p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}
