package plugin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jokarl/lintcfg/ruleset"
)

func TestPresetConversion(t *testing.T) {
	want := &ruleset.Preset{
		Name:            "company:base",
		Extends:         []string{"tslint:recommended"},
		RuleDirectories: []string{"rules"},
		DefaultSeverity: ruleset.NOTICE,
		Rules: ruleset.Rules{
			"max-line-length": ruleset.Enable(140),
			"ratio":           ruleset.Enable(0.5),
			"no-console":      ruleset.Disable(),
			"variable-name": ruleset.Enable(
				"ban-keywords",
				map[string]any{"allow": []any{"_", true}},
			),
		},
		TargetRules: ruleset.Rules{},
	}

	s, err := toProtoPreset(want)
	if err != nil {
		t.Fatalf("toProtoPreset() error = %v", err)
	}
	got, err := fromProtoPreset("company:base", s)
	if err != nil {
		t.Fatalf("fromProtoPreset() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("conversion mismatch (-want +got):\n%s", diff)
	}
}

func TestFromProtoPreset_Malformed(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"sourceRules": map[string]any{"curly": "yes"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fromProtoPreset("bad", s); err == nil {
		t.Error("fromProtoPreset() error = nil, want error")
	}
}

func TestFromProtoNames(t *testing.T) {
	got, err := fromProtoNames(toProtoNames([]string{"a", "b"}))
	if err != nil {
		t.Fatalf("fromProtoNames() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	list := &structpb.ListValue{Values: []*structpb.Value{structpb.NewNumberValue(1)}}
	if _, err := fromProtoNames(list); err == nil {
		t.Error("fromProtoNames() error = nil, want error for a non-string")
	}
}
