// Package config reads and writes rule configuration documents.
//
// A document has five top-level keys:
//
//	ruleDirectories      ordered list of rule directories
//	extends              ordered list of preset references
//	defaultSeverity      optional "error", "warning" or "notice"
//	sourceRules          rule name -> false | [enabled, options...]
//	targetLanguageRules  rule name -> false | [enabled, options...]
//
// Documents are written in HCL (.hcl), JSON (.json) or YAML (.yaml, .yml).
// HCL and JSON are decoded with hashicorp/hcl, YAML with gopkg.in/yaml.v3.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/hashicorp/hcl/v2"

	"github.com/jokarl/lintcfg/ruleset"
)

// Document keys.
const (
	KeyRuleDirectories     = "ruleDirectories"
	KeyExtends             = "extends"
	KeyDefaultSeverity     = "defaultSeverity"
	KeySourceRules         = "sourceRules"
	KeyTargetLanguageRules = "targetLanguageRules"
)

// Document is a decoded configuration document.
type Document struct {
	// RuleDirectories lists directories with custom rule implementations.
	RuleDirectories []string
	// Extends lists presets, merged left to right.
	Extends []string
	// DefaultSeverity is zero when the document does not set it.
	DefaultSeverity ruleset.Severity
	// SourceRules are the local source rule overrides.
	SourceRules ruleset.Rules
	// TargetLanguageRules are the local target language rule overrides.
	TargetLanguageRules ruleset.Rules
}

// Format is a document encoding.
type Format int

const (
	// FormatHCL is HCL native syntax.
	FormatHCL Format = iota
	// FormatJSON is JSON.
	FormatJSON
	// FormatYAML is YAML.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatHCL:
		return "hcl"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "hcl":
		return FormatHCL, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want hcl, json or yaml)", s)
	}
}

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%s: no file extension", path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// IsConfigPath reports whether path has a document extension.
func IsConfigPath(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// Decode decodes src, choosing the format from filename's extension.
func Decode(filename string, src []byte) (*Document, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}
	return DecodeFormat(filename, src, format)
}

// DecodeFormat decodes src in the given format. filename is used in error
// messages only.
func DecodeFormat(filename string, src []byte, format Format) (*Document, error) {
	switch format {
	case FormatHCL, FormatJSON:
		return decodeHCL(filename, src, format)
	case FormatYAML:
		return decodeYAML(filename, src)
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}

// Encode encodes doc in the given format. Rule names are written in sorted
// order so output is stable.
func Encode(doc *Document, format Format) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}
	switch format {
	case FormatHCL:
		return encodeHCL(doc)
	case FormatJSON:
		return encodeJSON(doc)
	case FormatYAML:
		return encodeYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, src)
}

// Save encodes doc in the format implied by path and writes it atomically.
func Save(path string, doc *Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := Encode(doc, format)
	if err != nil {
		return err
	}
	return WriteFile(path, out)
}

// WriteFile atomically replaces the file at path with data.
func WriteFile(path string, data []byte) error {
	return renameio.WriteFile(path, data, 0o644)
}

// Registry builds a registry from the document.
func (d *Document) Registry(name string, provider ruleset.Provider, opts ...ruleset.Option) *ruleset.Registry {
	r := ruleset.NewRegistry(name, provider, opts...)
	for _, dir := range d.RuleDirectories {
		r.AddRuleDirectory(dir)
	}
	for _, ref := range d.Extends {
		r.AddPresetReference(ref)
	}
	if d.DefaultSeverity != 0 {
		r.SetDefaultSeverity(d.DefaultSeverity)
	}
	for name, s := range d.SourceRules {
		r.SetRule(name, s)
	}
	for name, s := range d.TargetLanguageRules {
		r.SetTargetRule(name, s)
	}
	return r
}

// Preset returns the document as a preset named name.
func (d *Document) Preset(name string) *ruleset.Preset {
	return &ruleset.Preset{
		Name:            name,
		Extends:         slices.Clone(d.Extends),
		RuleDirectories: slices.Clone(d.RuleDirectories),
		DefaultSeverity: d.DefaultSeverity,
		Rules:           d.SourceRules.Clone(),
		TargetRules:     d.TargetLanguageRules.Clone(),
	}
}

// FromRegistry returns the document a registry was built from.
func FromRegistry(r *ruleset.Registry) *Document {
	return &Document{
		RuleDirectories:     r.RuleDirectories(),
		Extends:             r.Extends(),
		DefaultSeverity:     r.DefaultSeverity(),
		SourceRules:         r.LocalRules(ruleset.ScopeSource),
		TargetLanguageRules: r.LocalRules(ruleset.ScopeTarget),
	}
}

// FromEffective returns a self-contained document for a resolved
// configuration. It extends nothing.
func FromEffective(e *ruleset.Effective) *Document {
	return &Document{
		RuleDirectories:     slices.Clone(e.RuleDirectories),
		DefaultSeverity:     e.DefaultSeverity,
		SourceRules:         e.Rules.Clone(),
		TargetLanguageRules: e.TargetRules.Clone(),
	}
}

// ruleEntry is one decoded rule before it is parsed into a Setting.
type ruleEntry struct {
	name    string
	value   any
	subject *hcl.Range
}

// decodeRules parses entries into rules, rejecting duplicate names.
func decodeRules(entries []ruleEntry) (ruleset.Rules, error) {
	rules := make(ruleset.Rules, len(entries))
	for _, e := range entries {
		if _, dup := rules[e.name]; dup {
			return nil, &ruleset.MalformedSettingError{Rule: e.name, Reason: "duplicate rule name", Subject: e.subject}
		}
		s, err := ruleset.ParseSetting(e.name, e.value)
		if err != nil {
			var malformed *ruleset.MalformedSettingError
			if errors.As(err, &malformed) && malformed.Subject == nil {
				malformed.Subject = e.subject
			}
			return nil, err
		}
		rules[e.name] = s
	}
	return rules, nil
}

// decodeStrings converts a decoded list value into strings.
func decodeStrings(key string, v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list of strings", key)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected a string", key, i)
		}
		out = append(out, s)
	}
	return out, nil
}

func sortedNames(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ruleValues returns the persisted form of every rule, keyed by name.
func ruleValues(rules ruleset.Rules) map[string]any {
	out := make(map[string]any, len(rules))
	for name, s := range rules {
		out[name] = s.Value()
	}
	return out
}
