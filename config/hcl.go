package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/jokarl/lintcfg/hclext"
	"github.com/jokarl/lintcfg/ruleset"
)

var documentSchema = &hclext.BodySchema{
	Attributes: []hclext.AttributeSchema{
		{Name: KeyRuleDirectories},
		{Name: KeyExtends},
		{Name: KeyDefaultSeverity},
		{Name: KeySourceRules},
		{Name: KeyTargetLanguageRules},
	},
}

// decodeHCL decodes HCL native or JSON syntax.
func decodeHCL(filename string, src []byte, format Format) (*Document, error) {
	parser := hclparse.NewParser()

	var file *hcl.File
	var diags hcl.Diagnostics
	if format == FormatJSON {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	content, diags := hclext.Content(file.Body, documentSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	doc := &Document{
		SourceRules:         ruleset.Rules{},
		TargetLanguageRules: ruleset.Rules{},
	}

	var err error

	if attr, ok := content.Attributes[KeyRuleDirectories]; ok {
		if doc.RuleDirectories, err = attrStrings(attr); err != nil {
			return nil, err
		}
	}
	if attr, ok := content.Attributes[KeyExtends]; ok {
		if doc.Extends, err = attrStrings(attr); err != nil {
			return nil, err
		}
	}
	if attr, ok := content.Attributes[KeyDefaultSeverity]; ok {
		v, err := attrValue(attr)
		if err != nil {
			return nil, err
		}
		s, ok := v.(string)
		if !ok {
			return nil, attrError(attr, "expected a string")
		}
		if doc.DefaultSeverity, err = ruleset.ParseSeverity(s); err != nil {
			return nil, attrError(attr, err.Error())
		}
	}
	if attr, ok := content.Attributes[KeySourceRules]; ok {
		if doc.SourceRules, err = attrRules(attr); err != nil {
			return nil, err
		}
	}
	if attr, ok := content.Attributes[KeyTargetLanguageRules]; ok {
		if doc.TargetLanguageRules, err = attrRules(attr); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func attrError(attr *hclext.Attribute, detail string) error {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Invalid %s", attr.Name),
		Detail:   detail,
		Subject:  attr.Expr.Range().Ptr(),
	}}
}

func attrValue(attr *hclext.Attribute) (any, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	v, err := hclext.FromValue(val)
	if err != nil {
		return nil, attrError(attr, err.Error())
	}
	return v, nil
}

func attrStrings(attr *hclext.Attribute) ([]string, error) {
	v, err := attrValue(attr)
	if err != nil {
		return nil, err
	}
	out, err := decodeStrings(attr.Name, v)
	if err != nil {
		return nil, attrError(attr, err.Error())
	}
	return out, nil
}

// attrRules decodes a rule mapping. Native object constructors are walked
// item by item so errors point at the offending rule.
func attrRules(attr *hclext.Attribute) (ruleset.Rules, error) {
	cons, ok := attr.Expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		v, err := attrValue(attr)
		if err != nil {
			return nil, err
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, attrError(attr, "expected a mapping of rule names to settings")
		}
		entries := make([]ruleEntry, 0, len(m))
		for _, name := range sortedNames(m) {
			entries = append(entries, ruleEntry{name: name, value: m[name], subject: attr.Expr.Range().Ptr()})
		}
		return decodeRules(entries)
	}

	entries := make([]ruleEntry, 0, len(cons.Items))
	for _, item := range cons.Items {
		key, diags := item.KeyExpr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if key.IsNull() || !key.IsKnown() || !key.Type().Equals(cty.String) {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid rule name",
				Detail:   "Rule names must be strings.",
				Subject:  item.KeyExpr.Range().Ptr(),
			}}
		}
		name := key.AsString()
		subject := item.ValueExpr.Range().Ptr()

		val, diags := item.ValueExpr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		v, err := hclext.FromValue(val)
		if err != nil {
			return nil, &ruleset.MalformedSettingError{Rule: name, Reason: err.Error(), Subject: subject}
		}
		entries = append(entries, ruleEntry{name: name, value: v, subject: subject})
	}
	return decodeRules(entries)
}

// encodeHCL writes doc as formatted HCL native syntax.
func encodeHCL(doc *Document) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	attrs, err := documentValues(doc)
	if err != nil {
		return nil, err
	}
	for i, a := range attrs {
		if i > 0 {
			body.AppendNewline()
		}
		body.SetAttributeValue(a.name, a.value)
	}
	return hclwrite.Format(f.Bytes()), nil
}

// encodeJSON writes doc as indented JSON.
func encodeJSON(doc *Document) ([]byte, error) {
	attrs, err := documentValues(doc)
	if err != nil {
		return nil, err
	}
	obj := make(map[string]cty.Value, len(attrs))
	for _, a := range attrs {
		obj[a.name] = a.value
	}
	v := cty.ObjectVal(obj)

	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

type namedValue struct {
	name  string
	value cty.Value
}

// documentValues returns the document's attributes in write order.
func documentValues(doc *Document) ([]namedValue, error) {
	var attrs []namedValue
	add := func(name string, v any) error {
		cv, err := hclext.ToValue(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		attrs = append(attrs, namedValue{name: name, value: cv})
		return nil
	}

	if err := add(KeyRuleDirectories, slices.Clone(doc.RuleDirectories)); err != nil {
		return nil, err
	}
	if err := add(KeyExtends, slices.Clone(doc.Extends)); err != nil {
		return nil, err
	}
	if kw := doc.DefaultSeverity.Keyword(); kw != "" {
		if err := add(KeyDefaultSeverity, kw); err != nil {
			return nil, err
		}
	}
	if err := add(KeySourceRules, ruleValues(doc.SourceRules)); err != nil {
		return nil, err
	}
	if err := add(KeyTargetLanguageRules, ruleValues(doc.TargetLanguageRules)); err != nil {
		return nil, err
	}
	return attrs, nil
}
