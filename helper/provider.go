// Package helper provides testing utilities for code that consumes lint
// configurations. Use TestProvider to resolve registries against presets
// written inline.
//
// Example:
//
//	func TestStrict(t *testing.T) {
//	    provider := helper.TestProvider(t, map[string]string{
//	        "company:base": `sourceRules = { curly = true }`,
//	    })
//
//	    r := ruleset.NewRegistry("project", provider)
//	    r.AddPresetReference("company:base")
//	    eff, err := r.Resolve(context.Background())
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    helper.AssertRules(t, ruleset.Rules{
//	        "curly": ruleset.Enable(),
//	    }, eff.Rules)
//	}
package helper

import (
	"testing"

	"github.com/jokarl/lintcfg/config"
	"github.com/jokarl/lintcfg/ruleset"
)

// TestProvider decodes each source as the preset named by its key. Keys
// with a .json, .yaml, or .yml extension are decoded in that format;
// anything else is HCL. Decode errors fail the test immediately.
func TestProvider(t *testing.T, presets map[string]string) ruleset.Static {
	t.Helper()

	static := make(ruleset.Static, len(presets))
	for ref, src := range presets {
		filename := ref
		if !config.IsConfigPath(ref) {
			filename = ref + ".hcl"
		}
		doc, err := config.Decode(filename, []byte(src))
		if err != nil {
			t.Fatalf("failed to decode preset %q: %v", ref, err)
		}
		static[ref] = doc.Preset(ref)
	}
	return static
}

// TestRegistry decodes src as a local document and returns its registry,
// backed by provider.
func TestRegistry(t *testing.T, filename, src string, provider ruleset.Provider) *ruleset.Registry {
	t.Helper()

	doc, err := config.Decode(filename, []byte(src))
	if err != nil {
		t.Fatalf("failed to decode %s: %v", filename, err)
	}
	return doc.Registry(filename, provider)
}
