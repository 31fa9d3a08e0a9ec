package config

import (
	"fmt"

	"github.com/jokarl/lintcfg/ruleset"
)

// Map returns the document as plain values, the same shape a JSON or YAML
// decoder produces. defaultSeverity is omitted when unset.
func (d *Document) Map() map[string]any {
	m := map[string]any{
		KeyRuleDirectories:     stringsToAny(d.RuleDirectories),
		KeyExtends:             stringsToAny(d.Extends),
		KeySourceRules:         ruleValues(d.SourceRules),
		KeyTargetLanguageRules: ruleValues(d.TargetLanguageRules),
	}
	if kw := d.DefaultSeverity.Keyword(); kw != "" {
		m[KeyDefaultSeverity] = kw
	}
	return m
}

// FromMap decodes a document from plain values. Unknown keys are
// rejected.
func FromMap(m map[string]any) (*Document, error) {
	doc := &Document{
		SourceRules:         ruleset.Rules{},
		TargetLanguageRules: ruleset.Rules{},
	}

	for key, v := range m {
		var err error
		switch key {
		case KeyRuleDirectories:
			doc.RuleDirectories, err = decodeStrings(key, v)
		case KeyExtends:
			doc.Extends, err = decodeStrings(key, v)
		case KeyDefaultSeverity:
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%s: expected a string", key)
			}
			doc.DefaultSeverity, err = ruleset.ParseSeverity(s)
		case KeySourceRules:
			doc.SourceRules, err = mapRules(key, v)
		case KeyTargetLanguageRules:
			doc.TargetLanguageRules, err = mapRules(key, v)
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func mapRules(key string, v any) (ruleset.Rules, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a mapping of rule names to settings", key)
	}
	entries := make([]ruleEntry, 0, len(m))
	for _, name := range sortedNames(m) {
		entries = append(entries, ruleEntry{name: name, value: m[name]})
	}
	return decodeRules(entries)
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
