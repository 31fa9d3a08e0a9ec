// Package preset provides the preset providers used to resolve extends
// references: presets bundled with the binary, and other configuration
// documents on disk.
package preset

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jokarl/lintcfg/config"
	"github.com/jokarl/lintcfg/ruleset"
)

//go:embed builtin
var builtinFS embed.FS

const builtinRoot = "builtin"

// Builtin serves the presets bundled with lintcfg.
//
// A reference maps to a file by replacing ":" with "/" and appending
// ".hcl", so "tslint:recommended" is builtin/tslint/recommended.hcl.
type Builtin struct {
	// FS overrides the bundled presets. Paths are relative to its root.
	FS fs.FS
}

var _ ruleset.Provider = Builtin{}

func (b Builtin) fsys() fs.FS {
	if b.FS != nil {
		return b.FS
	}
	sub, err := fs.Sub(builtinFS, builtinRoot)
	if err != nil {
		panic(err)
	}
	return sub
}

// Preset implements ruleset.Provider.
func (b Builtin) Preset(_ context.Context, ref string) (*ruleset.Preset, error) {
	name := strings.ReplaceAll(ref, ":", "/") + ".hcl"
	if !fs.ValidPath(name) {
		return nil, &ruleset.UnknownPresetError{Ref: ref}
	}

	src, err := fs.ReadFile(b.fsys(), name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ruleset.UnknownPresetError{Ref: ref}
	}
	if err != nil {
		return nil, fmt.Errorf("reading preset %q: %w", ref, err)
	}

	doc, err := config.Decode(path.Join(builtinRoot, name), src)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", ref, err)
	}
	return doc.Preset(ref), nil
}

// Names returns the references of all bundled presets, sorted.
func (b Builtin) Names() ([]string, error) {
	var names []string
	err := fs.WalkDir(b.fsys(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".hcl" {
			return nil
		}
		names = append(names, strings.ReplaceAll(strings.TrimSuffix(p, ".hcl"), "/", ":"))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
