package ruleset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// ErrUnknownPreset is matched by errors.Is for every UnknownPresetError.
var ErrUnknownPreset = errors.New("unknown preset")

// UnknownPresetError is returned when no provider can resolve a preset
// reference.
type UnknownPresetError struct {
	// Ref is the unresolved preset reference.
	Ref string
	// Registry is the name of the registry that referenced it, if known.
	Registry string
}

func (e *UnknownPresetError) Error() string {
	if e.Registry != "" {
		return fmt.Sprintf("%s: unknown preset %q", e.Registry, e.Ref)
	}
	return fmt.Sprintf("unknown preset %q", e.Ref)
}

// Is reports whether target is ErrUnknownPreset.
func (e *UnknownPresetError) Is(target error) bool {
	return target == ErrUnknownPreset
}

// MalformedSettingError is returned when a rule value does not have the
// [enabled, options...] shape.
type MalformedSettingError struct {
	// Rule is the rule name the value was keyed by.
	Rule string
	// Reason describes what is wrong with the value.
	Reason string
	// Subject is the source range of the value, when decoded from HCL.
	Subject *hcl.Range
}

func (e *MalformedSettingError) Error() string {
	if e.Subject != nil {
		return fmt.Sprintf("%s: malformed setting for rule %q: %s", e.Subject, e.Rule, e.Reason)
	}
	return fmt.Sprintf("malformed setting for rule %q: %s", e.Rule, e.Reason)
}

// PresetCycleError is returned when presets extend each other in a loop.
type PresetCycleError struct {
	// Chain is the extends path, ending with the repeated reference.
	Chain []string
}

func (e *PresetCycleError) Error() string {
	return "preset extends cycle: " + strings.Join(e.Chain, " -> ")
}
