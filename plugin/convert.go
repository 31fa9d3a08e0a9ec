package plugin

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jokarl/lintcfg/config"
	"github.com/jokarl/lintcfg/ruleset"
)

// toProtoPreset encodes p in the persisted document shape.
func toProtoPreset(p *ruleset.Preset) (*structpb.Struct, error) {
	doc := &config.Document{
		RuleDirectories:     p.RuleDirectories,
		Extends:             p.Extends,
		DefaultSeverity:     p.DefaultSeverity,
		SourceRules:         p.Rules,
		TargetLanguageRules: p.TargetRules,
	}
	s, err := structpb.NewStruct(doc.Map())
	if err != nil {
		return nil, fmt.Errorf("encoding preset %q: %w", p.Name, err)
	}
	return s, nil
}

// fromProtoPreset decodes a preset named ref. Protobuf carries every number
// as a double, so integral option values come back as int.
func fromProtoPreset(ref string, s *structpb.Struct) (*ruleset.Preset, error) {
	doc, err := config.FromMap(s.AsMap())
	if err != nil {
		return nil, fmt.Errorf("decoding preset %q: %w", ref, err)
	}
	return doc.Preset(ref), nil
}

func toProtoNames(names []string) *structpb.ListValue {
	values := make([]*structpb.Value, len(names))
	for i, name := range names {
		values[i] = structpb.NewStringValue(name)
	}
	return &structpb.ListValue{Values: values}
}

func fromProtoNames(list *structpb.ListValue) ([]string, error) {
	names := make([]string, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("preset name %d is not a string", i)
		}
		names = append(names, s.StringValue)
	}
	return names, nil
}
