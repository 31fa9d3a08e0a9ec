// Package configs holds the linter configurations of the two projects: the
// plain code project and the component UI project. Both are ordinary
// documents resolved by the same registry; they differ only in data.
package configs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jokarl/lintcfg/config"
)

//go:embed *.hcl
var files embed.FS

// Names returns the available configuration names, sorted.
func Names() []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		// The embedded FS always has a root.
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load decodes the named configuration.
func Load(name string) (*config.Document, error) {
	filename := name + ".hcl"
	src, err := files.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unknown configuration %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	if err != nil {
		return nil, err
	}
	return config.Decode(filename, src)
}
