package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"gopkg.in/yaml.v3"

	"github.com/jokarl/lintcfg/ruleset"
)

// yamlDocument is the YAML shape of a Document. Rule mappings are kept as
// nodes so settings can be decoded one by one with their positions.
type yamlDocument struct {
	RuleDirectories     []string  `yaml:"ruleDirectories"`
	Extends             []string  `yaml:"extends"`
	DefaultSeverity     string    `yaml:"defaultSeverity,omitempty"`
	SourceRules         yaml.Node `yaml:"sourceRules"`
	TargetLanguageRules yaml.Node `yaml:"targetLanguageRules"`
}

// yamlOutput is the encoding counterpart of yamlDocument.
type yamlOutput struct {
	RuleDirectories     []string   `yaml:"ruleDirectories"`
	Extends             []string   `yaml:"extends"`
	DefaultSeverity     string     `yaml:"defaultSeverity,omitempty"`
	SourceRules         *yaml.Node `yaml:"sourceRules"`
	TargetLanguageRules *yaml.Node `yaml:"targetLanguageRules"`
}

func decodeYAML(filename string, src []byte) (*Document, error) {
	var raw yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	doc := &Document{
		RuleDirectories: raw.RuleDirectories,
		Extends:         raw.Extends,
	}

	var err error
	if doc.DefaultSeverity, err = ruleset.ParseSeverity(raw.DefaultSeverity); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", filename, KeyDefaultSeverity, err)
	}
	if doc.SourceRules, err = yamlRules(filename, KeySourceRules, &raw.SourceRules); err != nil {
		return nil, err
	}
	if doc.TargetLanguageRules, err = yamlRules(filename, KeyTargetLanguageRules, &raw.TargetLanguageRules); err != nil {
		return nil, err
	}
	return doc, nil
}

func yamlRules(filename, key string, node *yaml.Node) (ruleset.Rules, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null") {
		return ruleset.Rules{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s:%d: %s: expected a mapping of rule names to settings", filename, node.Line, key)
	}

	entries := make([]ruleEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, val := node.Content[i].Value, node.Content[i+1]
		subject := &hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: val.Line, Column: val.Column},
			End:      hcl.Pos{Line: val.Line, Column: val.Column},
		}

		var v any
		if err := val.Decode(&v); err != nil {
			return nil, &ruleset.MalformedSettingError{Rule: name, Reason: err.Error(), Subject: subject}
		}
		entries = append(entries, ruleEntry{name: name, value: v, subject: subject})
	}
	return decodeRules(entries)
}

func encodeYAML(doc *Document) ([]byte, error) {
	out := yamlOutput{
		RuleDirectories: doc.RuleDirectories,
		Extends:         doc.Extends,
		DefaultSeverity: doc.DefaultSeverity.Keyword(),
	}
	if out.RuleDirectories == nil {
		out.RuleDirectories = []string{}
	}
	if out.Extends == nil {
		out.Extends = []string{}
	}

	var err error
	if out.SourceRules, err = yamlRulesNode(doc.SourceRules); err != nil {
		return nil, err
	}
	if out.TargetLanguageRules, err = yamlRulesNode(doc.TargetLanguageRules); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// yamlRulesNode renders rules as a mapping with one flow-style setting per
// line.
func yamlRulesNode(rules ruleset.Rules) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(rules) == 0 {
		n.Style = yaml.FlowStyle
		return n, nil
	}
	for _, name := range rules.Names() {
		v := &yaml.Node{}
		if err := v.Encode(rules[name].Value()); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if v.Kind == yaml.SequenceNode {
			v.Style = yaml.FlowStyle
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, v)
	}
	return n, nil
}
