package ruleset

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSetting(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Setting
	}{
		{"false", false, Setting{Enabled: false}},
		{"true shorthand", true, Setting{Enabled: true}},
		{"enabled no options", []any{true}, Setting{Enabled: true}},
		{"disabled list", []any{false}, Setting{Enabled: false}},
		{"string option", []any{true, "1tbs"}, Enable("1tbs")},
		{"number option", []any{true, float64(20)}, Enable(20)},
		{
			"nested mapping",
			[]any{true, 4, map[string]any{"SwitchCase": int64(1)}},
			Enable(4, map[string]any{"SwitchCase": 1}),
		},
		{
			"several enum options",
			[]any{true, "ban-keywords", "check-format", "allow-leading-underscore"},
			Enable("ban-keywords", "check-format", "allow-leading-underscore"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSetting("rule", tt.in)
			if err != nil {
				t.Fatalf("ParseSetting() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSetting() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSetting_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"empty list", []any{}},
		{"first element not bool", []any{"error", "1tbs"}},
		{"bare string", "always"},
		{"bare number", 4},
		{"bare mapping", map[string]any{"limit": 120}},
		{"null option", []any{true, nil}},
		{"unsupported option", []any{true, struct{}{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSetting("brace-style", tt.in)
			var malformed *MalformedSettingError
			if !errors.As(err, &malformed) {
				t.Fatalf("ParseSetting() error = %v, want *MalformedSettingError", err)
			}
			if malformed.Rule != "brace-style" {
				t.Errorf("Rule = %q, want %q", malformed.Rule, "brace-style")
			}
		})
	}
}

func TestSetting_Value(t *testing.T) {
	tests := []struct {
		name    string
		setting Setting
		want    any
	}{
		{"disabled", Disable(), false},
		{"disabled with options", Disable("always"), []any{false, "always"}},
		{"enabled", Enable(), []any{true}},
		{"enabled with options", Enable(4, map[string]any{"SwitchCase": 1}), []any{true, 4, map[string]any{"SwitchCase": 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.setting.Value()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Value() mismatch (-want +got):\n%s", diff)
			}

			back, err := ParseSetting("rule", got)
			if err != nil {
				t.Fatalf("ParseSetting(Value()) error = %v", err)
			}
			if diff := cmp.Diff(tt.setting, back); diff != "" {
				t.Errorf("ParseSetting(Value()) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetting_CloneIsDeep(t *testing.T) {
	orig := Enable(map[string]any{"limit": 120, "ignore": []any{"a"}})
	c := orig.Clone()

	c.Options[0].(map[string]any)["limit"] = 80
	c.Options[0].(map[string]any)["ignore"].([]any)[0] = "b"

	opts := orig.Options[0].(map[string]any)
	if opts["limit"] != 120 {
		t.Errorf("limit = %v, want 120", opts["limit"])
	}
	if opts["ignore"].([]any)[0] != "a" {
		t.Errorf("ignore[0] = %v, want a", opts["ignore"].([]any)[0])
	}
}

func TestNormalizeOption(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"integral float", float64(120), 120},
		{"fraction", 0.5, 0.5},
		{"int64", int64(7), 7},
		{"uint8", uint8(3), 3},
		{"nested", []any{map[string]any{"n": float32(2)}}, []any{map[string]any{"n": 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeOption(tt.in)
			if err != nil {
				t.Fatalf("NormalizeOption() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NormalizeOption() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeOption_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"uint64 max", uint64(math.MaxUint64)},
		{"uint64 above int", uint64(math.MaxInt) + 1},
		{"uint above int", uint(math.MaxInt) + 1},
		{"nested", map[string]any{"limit": uint64(math.MaxUint64)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := NormalizeOption(tt.in); err == nil {
				t.Errorf("NormalizeOption() = %v, want error", got)
			}
		})
	}

	got, err := NormalizeOption(uint64(math.MaxInt))
	if err != nil {
		t.Fatalf("NormalizeOption(MaxInt) error = %v", err)
	}
	if got != math.MaxInt {
		t.Errorf("NormalizeOption(MaxInt) = %v, want %d", got, math.MaxInt)
	}
}

func TestParseSetting_OutOfRangeOption(t *testing.T) {
	_, err := ParseSetting("max-line-length", []any{true, uint64(math.MaxUint64)})
	var malformed *MalformedSettingError
	if !errors.As(err, &malformed) {
		t.Fatalf("ParseSetting() error = %v, want *MalformedSettingError", err)
	}
	if malformed.Rule != "max-line-length" {
		t.Errorf("Rule = %q, want %q", malformed.Rule, "max-line-length")
	}
}

func TestRules_NamesSorted(t *testing.T) {
	r := Rules{"quotemark": Enable(), "brace-style": Enable(), "interface-name": Disable()}

	want := []string{"brace-style", "interface-name", "quotemark"}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"brace-style", "quotemark"}, r.Enabled()); diff != "" {
		t.Errorf("Enabled() mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_CloneNil(t *testing.T) {
	var r Rules
	c := r.Clone()
	if c == nil {
		t.Fatal("Clone() of nil Rules returned nil")
	}
	if len(c) != 0 {
		t.Errorf("Clone() has %d entries, want 0", len(c))
	}
}
