package helper

import (
	"context"
	"testing"

	"github.com/jokarl/lintcfg/ruleset"
)

func TestTestProvider(t *testing.T) {
	provider := TestProvider(t, map[string]string{
		"company:base": `
sourceRules = {
  curly        = true
  "ter-indent" = [true, 4]
}
`,
		"strict.yaml": `
extends: ["company:base"]
sourceRules:
  no-console: [true]
`,
		"loose.json": `{"sourceRules": {"curly": false}}`,
	})

	r := TestRegistry(t, "project.hcl", `
extends = ["strict.yaml", "loose.json"]
targetLanguageRules = {
  quotemark = [true, "single"]
}
`, provider)

	eff, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	AssertRules(t, ruleset.Rules{
		"curly":      ruleset.Disable(),
		"ter-indent": ruleset.Enable(4),
		"no-console": ruleset.Enable(),
	}, eff.Rules)
	AssertRule(t, eff.TargetRules, "quotemark", ruleset.Enable("single"))

	AssertEffective(t, &ruleset.Effective{
		RuleDirectories: []string{},
		DefaultSeverity: ruleset.ERROR,
		Rules:           eff.Rules.Clone(),
		TargetRules:     ruleset.Rules{"quotemark": ruleset.Enable("single")},
	}, eff)
}
