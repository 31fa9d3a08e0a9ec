package ruleset

import (
	"context"
	"errors"
	"slices"
	"sort"
)

// Scope selects one of the two rule mappings a configuration carries.
type Scope int

const (
	// ScopeSource holds rules for the project's source language.
	ScopeSource Scope = iota
	// ScopeTarget holds rules for the compiled target language.
	ScopeTarget
)

// String returns the configuration key of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeSource:
		return "sourceRules"
	case ScopeTarget:
		return "targetLanguageRules"
	default:
		return "unknown"
	}
}

// Preset is a named bundle of rule defaults.
// A preset may itself extend other presets; those are flattened before
// the preset's own rules are applied.
type Preset struct {
	// Name is the reference the preset was resolved from.
	Name string
	// Extends lists further presets, merged left to right.
	Extends []string
	// RuleDirectories are passed through to the effective configuration.
	RuleDirectories []string
	// DefaultSeverity is the preset's default severity, zero if unset.
	DefaultSeverity Severity
	// Rules are the preset's source rules.
	Rules Rules
	// TargetRules are the preset's target language rules.
	TargetRules Rules
}

// RulesFor returns the rule mapping for scope.
func (p *Preset) RulesFor(scope Scope) Rules {
	if scope == ScopeTarget {
		return p.TargetRules
	}
	return p.Rules
}

// Provider resolves preset references.
//
// Implementations return an error matching ErrUnknownPreset when they do
// not know a reference, which lets Chain fall through to the next one.
type Provider interface {
	Preset(ctx context.Context, ref string) (*Preset, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, ref string) (*Preset, error)

// Preset calls f(ctx, ref).
func (f ProviderFunc) Preset(ctx context.Context, ref string) (*Preset, error) {
	return f(ctx, ref)
}

// Chain tries each provider in order. Only ErrUnknownPreset falls through;
// any other error is returned immediately.
type Chain []Provider

// Preset implements Provider.
func (c Chain) Preset(ctx context.Context, ref string) (*Preset, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		preset, err := p.Preset(ctx, ref)
		if err == nil {
			return preset, nil
		}
		if !errors.Is(err, ErrUnknownPreset) {
			return nil, err
		}
	}
	return nil, &UnknownPresetError{Ref: ref}
}

// Static is a fixed set of presets keyed by reference. Lookups return
// copies, so callers may modify what they receive.
type Static map[string]*Preset

// Preset implements Provider.
func (s Static) Preset(_ context.Context, ref string) (*Preset, error) {
	p, ok := s[ref]
	if !ok || p == nil {
		return nil, &UnknownPresetError{Ref: ref}
	}
	return p.clone(ref), nil
}

// Names returns the references s serves, sorted.
func (s Static) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Preset) clone(name string) *Preset {
	return &Preset{
		Name:            name,
		Extends:         slices.Clone(p.Extends),
		RuleDirectories: slices.Clone(p.RuleDirectories),
		DefaultSeverity: p.DefaultSeverity,
		Rules:           p.Rules.Clone(),
		TargetRules:     p.TargetRules.Clone(),
	}
}
