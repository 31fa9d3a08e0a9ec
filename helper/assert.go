package helper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jokarl/lintcfg/ruleset"
)

var rulesOpts = []cmp.Option{
	// A nil option list and an empty one persist identically.
	cmpopts.EquateEmpty(),
}

// AssertRules compares expected and actual rule mappings.
//
// Example:
//
//	helper.AssertRules(t, ruleset.Rules{
//	    "curly": ruleset.Enable(),
//	}, effective.Rules)
func AssertRules(t *testing.T, want, got ruleset.Rules) {
	t.Helper()
	if diff := cmp.Diff(want, got, rulesOpts...); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
}

// AssertRule checks a single entry of a rule mapping.
func AssertRule(t *testing.T, rules ruleset.Rules, name string, want ruleset.Setting) {
	t.Helper()
	got, ok := rules[name]
	if !ok {
		t.Errorf("rule %q is not configured", name)
		return
	}
	if diff := cmp.Diff(want, got, rulesOpts...); diff != "" {
		t.Errorf("rule %q mismatch (-want +got):\n%s", name, diff)
	}
}

// AssertEffective compares two resolution results.
func AssertEffective(t *testing.T, want, got *ruleset.Effective) {
	t.Helper()
	if diff := cmp.Diff(want, got, rulesOpts...); diff != "" {
		t.Errorf("effective configuration mismatch (-want +got):\n%s", diff)
	}
}
