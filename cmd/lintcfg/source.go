package main

import (
	"errors"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jokarl/lintcfg/config"
	"github.com/jokarl/lintcfg/configs"
	"github.com/jokarl/lintcfg/plugin"
	"github.com/jokarl/lintcfg/preset"
	"github.com/jokarl/lintcfg/ruledir"
	"github.com/jokarl/lintcfg/ruleset"
)

// source is a document together with where it came from.
type source struct {
	name    string
	path    string // empty for bundled profiles
	baseDir string
	doc     *config.Document
}

// loadSource loads the document named by args, or the bundled profile.
func loadSource(args []string, profile string) (*source, error) {
	switch {
	case len(args) > 0 && profile != "":
		return nil, errors.New("give either a file or --profile, not both")
	case profile != "":
		doc, err := configs.Load(profile)
		if err != nil {
			return nil, err
		}
		return &source{name: profile, baseDir: ".", doc: doc}, nil
	case len(args) > 0:
		doc, err := config.Load(args[0])
		if err != nil {
			return nil, err
		}
		return &source{name: args[0], path: args[0], baseDir: filepath.Dir(args[0]), doc: doc}, nil
	default:
		return nil, errors.New("no configuration given: pass a file or --profile")
	}
}

// ruleDirs returns the document's rule directories relative to its base.
func (s *source) ruleDirs() []string {
	dirs := make([]string, len(s.doc.RuleDirectories))
	for i, dir := range s.doc.RuleDirectories {
		if filepath.IsAbs(dir) {
			dirs[i] = dir
		} else {
			dirs[i] = filepath.Join(s.baseDir, dir)
		}
	}
	return dirs
}

// provider returns the preset provider for s: builtin presets, documents
// on disk, then the plugins found in s's rule directories. The returned
// function stops the plugins.
func (s *source) provider(logger hclog.Logger) (ruleset.Provider, func(), error) {
	found, err := ruledir.Discover(s.ruleDirs(), logger.Named("ruledir"))
	if err != nil {
		return nil, nil, err
	}
	host := plugin.NewHost(ruledir.Plugins(found), logger.Named("plugin"))
	return preset.Default(s.baseDir, host), host.Close, nil
}
