package ruleset

import (
	"fmt"
	"math"
	"sort"
)

// Setting is the configuration of a single rule: whether it is enabled and
// the ordered options passed to it.
//
// Option values are bool, string, int, float64, []any or map[string]any,
// nested freely. Use NormalizeOption to bring decoded values into that form.
type Setting struct {
	Enabled bool
	Options []any
}

// Enable returns an enabled setting with the given options.
func Enable(opts ...any) Setting {
	return Setting{Enabled: true, Options: opts}
}

// Disable returns a disabled setting with the given options.
func Disable(opts ...any) Setting {
	return Setting{Enabled: false, Options: opts}
}

// Clone returns a deep copy of the setting.
func (s Setting) Clone() Setting {
	c := Setting{Enabled: s.Enabled}
	if s.Options != nil {
		c.Options = make([]any, len(s.Options))
		for i, opt := range s.Options {
			c.Options[i] = cloneOption(opt)
		}
	}
	return c
}

// Value returns the persisted form of the setting: false for a disabled
// rule without options, otherwise [enabled, options...].
func (s Setting) Value() any {
	if !s.Enabled && len(s.Options) == 0 {
		return false
	}
	v := make([]any, 0, len(s.Options)+1)
	v = append(v, s.Enabled)
	for _, opt := range s.Options {
		v = append(v, cloneOption(opt))
	}
	return v
}

// ParseSetting decodes the persisted form of a rule setting.
//
//	false                 -> disabled
//	true                  -> enabled, no options
//	[true, "1tbs"]        -> enabled, options ["1tbs"]
//	[false]               -> disabled
//
// Anything else is a *MalformedSettingError.
func ParseSetting(name string, v any) (Setting, error) {
	switch val := v.(type) {
	case bool:
		return Setting{Enabled: val}, nil
	case []any:
		if len(val) == 0 {
			return Setting{}, &MalformedSettingError{Rule: name, Reason: "empty list, expected [enabled, options...]"}
		}
		enabled, ok := val[0].(bool)
		if !ok {
			return Setting{}, &MalformedSettingError{
				Rule:   name,
				Reason: fmt.Sprintf("first element must be a bool, got %s", describe(val[0])),
			}
		}
		s := Setting{Enabled: enabled}
		for i, raw := range val[1:] {
			opt, err := NormalizeOption(raw)
			if err != nil {
				return Setting{}, &MalformedSettingError{
					Rule:   name,
					Reason: fmt.Sprintf("option %d: %s", i+1, err),
				}
			}
			s.Options = append(s.Options, opt)
		}
		return s, nil
	case nil:
		return Setting{}, &MalformedSettingError{Rule: name, Reason: "null value"}
	default:
		return Setting{}, &MalformedSettingError{
			Rule:   name,
			Reason: fmt.Sprintf("expected false or [enabled, options...], got %s", describe(v)),
		}
	}
}

// NormalizeOption converts a decoded option value into its canonical form.
// Integral numbers become int, other numbers float64, and nested lists and
// mappings are normalized recursively.
func NormalizeOption(v any) (any, error) {
	switch val := v.(type) {
	case bool, string:
		return val, nil
	case int:
		return val, nil
	case int8:
		return int(val), nil
	case int16:
		return int(val), nil
	case int32:
		return int(val), nil
	case int64:
		if val < math.MinInt || val > math.MaxInt {
			return nil, fmt.Errorf("integer %d out of range", val)
		}
		return int(val), nil
	case uint:
		if uint64(val) > math.MaxInt {
			return nil, fmt.Errorf("integer %d out of range", val)
		}
		return int(val), nil
	case uint8:
		return int(val), nil
	case uint16:
		return int(val), nil
	case uint32:
		if uint64(val) > math.MaxInt {
			return nil, fmt.Errorf("integer %d out of range", val)
		}
		return int(val), nil
	case uint64:
		if val > math.MaxInt {
			return nil, fmt.Errorf("integer %d out of range", val)
		}
		return int(val), nil
	case float32:
		return normalizeFloat(float64(val)), nil
	case float64:
		return normalizeFloat(val), nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := NormalizeOption(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := NormalizeOption(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("null option value")
	default:
		return nil, fmt.Errorf("unsupported option type %T", v)
	}
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f)
	}
	return f
}

func cloneOption(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneOption(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneOption(item)
		}
		return out
	default:
		return val
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Rules maps rule names to their settings.
type Rules map[string]Setting

// Names returns the rule names in sorted order.
func (r Rules) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy. Cloning a nil Rules returns an empty, non-nil
// mapping.
func (r Rules) Clone() Rules {
	out := make(Rules, len(r))
	for name, s := range r {
		out[name] = s.Clone()
	}
	return out
}

// Enabled returns the sorted names of enabled rules.
func (r Rules) Enabled() []string {
	var names []string
	for _, name := range r.Names() {
		if r[name].Enabled {
			names = append(names, name)
		}
	}
	return names
}

// overlay writes every entry of src into r, replacing existing entries.
func (r Rules) overlay(src Rules) {
	for name, s := range src {
		r[name] = s.Clone()
	}
}
