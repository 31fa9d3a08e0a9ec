// Package ruleset resolves lint rule configuration.
//
// A Registry holds an ordered list of presets to extend, the rule
// directories to pass through to the linter, and local rule overrides.
// Resolve merges them into the effective configuration the linter consumes.
//
// Key types:
//   - Setting: enabled flag plus ordered option values for one rule
//   - Rules: rule name to Setting mapping
//   - Preset: a named bundle of rule defaults returned by a Provider
//   - Provider: external collaborator that resolves preset references
//   - Registry: presets + directories + local overrides
//   - Effective: the result of Registry.Resolve
package ruleset

import (
	"fmt"
	"strings"
)

// Severity represents the default severity the linter reports rule
// failures with.
type Severity int

const (
	// ERROR reports failures as errors.
	ERROR Severity = iota + 1
	// WARNING reports failures as warnings.
	WARNING
	// NOTICE reports failures as informational.
	NOTICE
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case ERROR:
		return "ERROR"
	case WARNING:
		return "WARNING"
	case NOTICE:
		return "NOTICE"
	default:
		return "UNKNOWN"
	}
}

// Keyword returns the lower-case form used in configuration documents.
// It returns "" for an unset severity.
func (s Severity) Keyword() string {
	switch s {
	case ERROR, WARNING, NOTICE:
		return strings.ToLower(s.String())
	default:
		return ""
	}
}

// ParseSeverity parses a configuration keyword. "warn" is accepted as an
// alias for "warning". The empty string parses to the zero (unset) value.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case "error":
		return ERROR, nil
	case "warning", "warn":
		return WARNING, nil
	case "notice":
		return NOTICE, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}
