package preset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jokarl/lintcfg/config"
	"github.com/jokarl/lintcfg/ruleset"
)

// Files resolves references that name another configuration document,
// such as "./base.hcl" or "/etc/lint/strict.yaml".
//
// Relative references are resolved against BaseDir. Relative path
// references inside a loaded document are rewritten against that
// document's directory, so nested extends behave as they read.
type Files struct {
	BaseDir string
}

var _ ruleset.Provider = Files{}

// IsPathRef reports whether ref names a file rather than a preset.
func IsPathRef(ref string) bool {
	return strings.HasPrefix(ref, "./") ||
		strings.HasPrefix(ref, "../") ||
		filepath.IsAbs(ref) ||
		config.IsConfigPath(ref)
}

// Preset implements ruleset.Provider.
func (f Files) Preset(_ context.Context, ref string) (*ruleset.Preset, error) {
	if !IsPathRef(ref) {
		return nil, &ruleset.UnknownPresetError{Ref: ref}
	}

	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.BaseDir, path)
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	doc, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ruleset.UnknownPresetError{Ref: ref}
	}
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", ref, err)
	}

	p := doc.Preset(ref)
	dir := filepath.Dir(path)
	for i, parent := range p.Extends {
		if IsPathRef(parent) && !filepath.IsAbs(parent) {
			p.Extends[i] = filepath.Join(dir, parent)
		}
	}
	return p, nil
}

// Default returns the provider chain used for configuration documents in
// baseDir: bundled presets, then files, then any extra providers.
func Default(baseDir string, extra ...ruleset.Provider) ruleset.Chain {
	chain := ruleset.Chain{Builtin{}, Files{BaseDir: baseDir}}
	return append(chain, extra...)
}
