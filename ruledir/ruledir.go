// Package ruledir inspects the rule directories a configuration names.
//
// The linter loads custom rules from these directories; this package only
// reports what it would find there. A rule file named fooBarRule.js or
// fooBarRule.ts provides the rule "foo-bar". Executables named
// lintcfg-preset-* are preset plugins (see package plugin).
package ruledir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-hclog"
)

const (
	rulePattern   = "**/*Rule.{js,ts}"
	pluginPattern = "lintcfg-preset-*"
)

// Directory is what Discover found in one rule directory.
type Directory struct {
	// Path is the directory as it was given.
	Path string
	// Rules are the custom rule names, sorted.
	Rules []string
	// Plugins are the absolute paths of preset plugin binaries, sorted.
	Plugins []string
}

// Discover walks each directory in order. Missing directories are skipped
// with a warning: whether that is fatal is the linter's decision.
func Discover(dirs []string, logger hclog.Logger) ([]Directory, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	out := make([]Directory, 0, len(dirs))
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("rule directory does not exist", "dir", dir)
			continue
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("rule directory %s is not a directory", dir)
		}

		d, err := scan(dir)
		if err != nil {
			return nil, fmt.Errorf("scanning rule directory %s: %w", dir, err)
		}
		logger.Debug("scanned rule directory", "dir", dir, "rules", len(d.Rules), "plugins", len(d.Plugins))
		out = append(out, d)
	}
	return out, nil
}

// Plugins returns the plugin binaries of every directory, in order.
func Plugins(dirs []Directory) []string {
	var out []string
	for _, d := range dirs {
		out = append(out, d.Plugins...)
	}
	return out
}

func scan(dir string) (Directory, error) {
	fsys := os.DirFS(dir)
	d := Directory{Path: dir}

	// Plugin paths go to exec.Command, which searches $PATH for bare names.
	abs, err := filepath.Abs(dir)
	if err != nil {
		return d, err
	}

	files, err := doublestar.Glob(fsys, rulePattern, doublestar.WithFilesOnly())
	if err != nil {
		return d, err
	}
	seen := map[string]bool{}
	for _, f := range files {
		name := RuleName(filepath.Base(f))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		d.Rules = append(d.Rules, name)
	}
	sort.Strings(d.Rules)

	bins, err := doublestar.Glob(fsys, pluginPattern, doublestar.WithFilesOnly())
	if err != nil {
		return d, err
	}
	for _, b := range bins {
		info, err := fs.Stat(fsys, b)
		if err != nil {
			return d, err
		}
		if info.Mode().Perm()&0o111 == 0 {
			continue
		}
		d.Plugins = append(d.Plugins, filepath.Join(abs, filepath.FromSlash(b)))
	}
	sort.Strings(d.Plugins)
	return d, nil
}

// RuleName returns the rule a file provides: "braceStyleRule.js" becomes
// "brace-style". It returns "" for files that are not rule files.
func RuleName(file string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	stem, ok := strings.CutSuffix(base, "Rule")
	if !ok || stem == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range stem {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
