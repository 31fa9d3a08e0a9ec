package ruleset

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Registry is the rule configuration of one project: the presets it
// extends, the rule directories it loads and its local rule overrides.
//
// A Registry is built once and then read. It is not safe for concurrent
// mutation; concurrent calls to Resolve on an unchanging Registry are safe
// as long as the Provider is.
//
// Example:
//
//	r := ruleset.NewRegistry("project", preset.Default("."))
//	r.AddPresetReference("tslint:recommended")
//	r.AddRuleDirectory("./node_modules/tslint-eslint-rules/dist/rules")
//	r.SetRule("cyclomatic-complexity", ruleset.Enable(20))
//	eff, err := r.Resolve(ctx)
type Registry struct {
	name            string
	provider        Provider
	logger          hclog.Logger
	extends         []string
	ruleDirectories []string
	defaultSeverity Severity
	local           [2]Rules
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used while resolving.
func WithLogger(logger hclog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDefaultSeverity sets the registry's local default severity.
func WithDefaultSeverity(s Severity) Option {
	return func(r *Registry) {
		r.defaultSeverity = s
	}
}

// NewRegistry creates an empty registry. provider may be nil when the
// registry extends no presets.
func NewRegistry(name string, provider Provider, opts ...Option) *Registry {
	r := &Registry{
		name:     name,
		provider: provider,
		logger:   hclog.NewNullLogger(),
		local:    [2]Rules{{}, {}},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string {
	return r.name
}

// AddPresetReference appends a preset to extend. Presets are merged in the
// order they are added. Blank references are dropped.
func (r *Registry) AddPresetReference(ref string) {
	if strings.TrimSpace(ref) == "" {
		r.logger.Warn("ignoring blank preset reference", "registry", r.name)
		return
	}
	r.extends = append(r.extends, ref)
}

// AddRuleDirectory appends a rule directory. Duplicates are kept.
func (r *Registry) AddRuleDirectory(dir string) {
	r.ruleDirectories = append(r.ruleDirectories, dir)
}

// SetRule sets the local override for a source rule, replacing any earlier
// override of the same name.
func (r *Registry) SetRule(name string, s Setting) {
	r.SetScopedRule(ScopeSource, name, s)
}

// SetTargetRule sets the local override for a target language rule.
func (r *Registry) SetTargetRule(name string, s Setting) {
	r.SetScopedRule(ScopeTarget, name, s)
}

// SetScopedRule sets the local override for name in scope. Rule names are
// not validated; the linter rejects names it does not know.
func (r *Registry) SetScopedRule(scope Scope, name string, s Setting) {
	r.local[scopeIndex(scope)][name] = s.Clone()
}

// SetDefaultSeverity sets the local default severity.
func (r *Registry) SetDefaultSeverity(s Severity) {
	r.defaultSeverity = s
}

// Extends returns a copy of the preset references.
func (r *Registry) Extends() []string {
	return slices.Clone(r.extends)
}

// RuleDirectories returns a copy of the local rule directories.
func (r *Registry) RuleDirectories() []string {
	return slices.Clone(r.ruleDirectories)
}

// LocalRules returns a copy of the local overrides for scope.
func (r *Registry) LocalRules(scope Scope) Rules {
	return r.local[scopeIndex(scope)].Clone()
}

// DefaultSeverity returns the local default severity, zero if unset.
func (r *Registry) DefaultSeverity() Severity {
	return r.defaultSeverity
}

// Effective is the resolved configuration handed to the linter.
type Effective struct {
	// RuleDirectories are preset directories in merge order followed by
	// the registry's own, unchanged.
	RuleDirectories []string
	// DefaultSeverity is never zero; it falls back to ERROR.
	DefaultSeverity Severity
	// Rules are the effective source rules.
	Rules Rules
	// TargetRules are the effective target language rules.
	TargetRules Rules
}

// RulesFor returns the effective mapping for scope.
func (e *Effective) RulesFor(scope Scope) Rules {
	if scope == ScopeTarget {
		return e.TargetRules
	}
	return e.Rules
}

// Resolve computes the effective configuration.
//
// Presets are applied in listed order, each overwriting the rules of the
// ones before it. A preset's own extends are flattened first. The local
// overrides are applied last. Resolve fails as a whole: on error no partial
// result is returned.
func (r *Registry) Resolve(ctx context.Context) (*Effective, error) {
	res := &resolution{
		registry: r,
		ctx:      ctx,
		flat:     make(map[string]*Preset),
	}

	acc := &Preset{Rules: Rules{}, TargetRules: Rules{}}
	for _, ref := range r.extends {
		flat, err := res.flatten(ref, nil)
		if err != nil {
			return nil, err
		}
		merge(acc, flat)
	}

	eff := &Effective{
		RuleDirectories: append(acc.RuleDirectories, r.ruleDirectories...),
		DefaultSeverity: acc.DefaultSeverity,
		Rules:           acc.Rules,
		TargetRules:     acc.TargetRules,
	}
	eff.Rules.overlay(r.local[scopeIndex(ScopeSource)])
	eff.TargetRules.overlay(r.local[scopeIndex(ScopeTarget)])
	if r.defaultSeverity != 0 {
		eff.DefaultSeverity = r.defaultSeverity
	}
	if eff.DefaultSeverity == 0 {
		eff.DefaultSeverity = ERROR
	}
	if eff.RuleDirectories == nil {
		eff.RuleDirectories = []string{}
	}

	r.logger.Debug("resolved rule configuration",
		"registry", r.name,
		"presets", len(r.extends),
		"rules", len(eff.Rules),
		"target_rules", len(eff.TargetRules),
	)
	return eff, nil
}

// resolution is the state of a single Resolve call.
type resolution struct {
	registry *Registry
	ctx      context.Context
	// flat caches flattened presets by reference.
	flat map[string]*Preset
}

// flatten returns the preset for ref with its own extends merged in.
// stack holds the references currently being flattened.
func (res *resolution) flatten(ref string, stack []string) (*Preset, error) {
	if slices.Contains(stack, ref) {
		return nil, &PresetCycleError{Chain: append(slices.Clone(stack), ref)}
	}
	if p, ok := res.flat[ref]; ok {
		return p, nil
	}
	if err := res.ctx.Err(); err != nil {
		return nil, err
	}

	r := res.registry
	if r.provider == nil {
		return nil, &UnknownPresetError{Ref: ref, Registry: r.name}
	}
	preset, err := r.provider.Preset(res.ctx, ref)
	if err != nil {
		var unknown *UnknownPresetError
		if errors.As(err, &unknown) && unknown.Registry == "" {
			return nil, &UnknownPresetError{Ref: unknown.Ref, Registry: r.name}
		}
		return nil, err
	}
	if preset == nil {
		return nil, &UnknownPresetError{Ref: ref, Registry: r.name}
	}
	r.logger.Trace("fetched preset", "registry", r.name, "preset", ref, "extends", preset.Extends)

	stack = append(stack, ref)
	flat := &Preset{Name: ref, Rules: Rules{}, TargetRules: Rules{}}
	for _, parent := range preset.Extends {
		p, err := res.flatten(parent, stack)
		if err != nil {
			return nil, err
		}
		merge(flat, p)
	}
	merge(flat, preset)

	res.flat[ref] = flat
	return flat, nil
}

// merge applies src on top of dst. Extends of src are ignored; callers
// flatten first.
func merge(dst, src *Preset) {
	dst.RuleDirectories = append(dst.RuleDirectories, src.RuleDirectories...)
	if src.DefaultSeverity != 0 {
		dst.DefaultSeverity = src.DefaultSeverity
	}
	dst.Rules.overlay(src.Rules)
	dst.TargetRules.overlay(src.TargetRules)
}

func scopeIndex(s Scope) int {
	if s == ScopeTarget {
		return 1
	}
	return 0
}
