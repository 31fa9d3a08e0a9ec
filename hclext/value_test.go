package hclext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"
)

func TestFromValue(t *testing.T) {
	tests := []struct {
		name string
		in   cty.Value
		want any
	}{
		{"bool", cty.True, true},
		{"string", cty.StringVal("1tbs"), "1tbs"},
		{"integer", cty.NumberIntVal(120), 120},
		{"fraction", cty.NumberFloatVal(0.25), 0.25},
		{"integral float", cty.NumberFloatVal(4), 4},
		{
			"tuple",
			cty.TupleVal([]cty.Value{cty.True, cty.NumberIntVal(4)}),
			[]any{true, 4},
		},
		{
			"list",
			cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
			[]any{"a", "b"},
		},
		{"empty tuple", cty.EmptyTupleVal, []any{}},
		{
			"object",
			cty.ObjectVal(map[string]cty.Value{
				"limit":          cty.NumberIntVal(120),
				"ignore-pattern": cty.StringVal("^import "),
			}),
			map[string]any{"limit": 120, "ignore-pattern": "^import "},
		},
		{
			"map",
			cty.MapVal(map[string]cty.Value{"SwitchCase": cty.NumberIntVal(1)}),
			map[string]any{"SwitchCase": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromValue(tt.in)
			if err != nil {
				t.Fatalf("FromValue() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromValue() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromValue_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   cty.Value
	}{
		{"null", cty.NullVal(cty.String)},
		{"unknown", cty.UnknownVal(cty.String)},
		{"null inside tuple", cty.TupleVal([]cty.Value{cty.True, cty.NullVal(cty.Number)})},
		{"dynamic null", cty.NullVal(cty.DynamicPseudoType)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromValue(tt.in); err == nil {
				t.Error("FromValue() error = nil, want error")
			}
		})
	}
}

func TestToValue_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"bool", false},
		{"string", "avoid-template"},
		{"int", 4},
		{"float", 1.5},
		{"empty list", []any{}},
		{"empty mapping", map[string]any{}},
		{"setting", []any{true, 4, map[string]any{"SwitchCase": 1}}},
		{"nested", map[string]any{"a": []any{"x", map[string]any{"b": true}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ToValue(tt.in)
			if err != nil {
				t.Fatalf("ToValue() error = %v", err)
			}
			got, err := FromValue(v)
			if err != nil {
				t.Fatalf("FromValue() error = %v", err)
			}
			if diff := cmp.Diff(tt.in, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToValue_Strings(t *testing.T) {
	v, err := ToValue([]string{"tslint:recommended", "tslint-react"})
	if err != nil {
		t.Fatalf("ToValue() error = %v", err)
	}
	if !v.Type().IsTupleType() || v.LengthInt() != 2 {
		t.Errorf("ToValue() = %#v, want 2-element tuple", v)
	}
}

func TestToValue_Unsupported(t *testing.T) {
	if _, err := ToValue(struct{}{}); err == nil {
		t.Error("ToValue(struct{}{}) error = nil, want error")
	}
	if _, err := ToValue([]any{true, nil}); err == nil {
		t.Error("ToValue([true, nil]) error = nil, want error")
	}
}
