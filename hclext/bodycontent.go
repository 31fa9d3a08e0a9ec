// Package hclext bridges HCL and rule configuration values.
//
// Configuration documents are decoded with github.com/hashicorp/hcl/v2 into
// cty values; this package converts those into plain option values
// (bool, string, int, float64, []any, map[string]any) and back, and provides
// a small schema layer for the flat, attribute-only documents.
package hclext

import (
	"github.com/hashicorp/hcl/v2"
)

// BodySchema represents the expected attributes of a configuration body.
//
// Example:
//
//	schema := &hclext.BodySchema{
//	    Attributes: []hclext.AttributeSchema{
//	        {Name: "extends"},
//	        {Name: "sourceRules"},
//	    },
//	}
type BodySchema struct {
	// Attributes defines expected attributes.
	Attributes []AttributeSchema
}

// AttributeSchema represents an expected HCL attribute.
type AttributeSchema struct {
	// Name is the attribute name to match.
	Name string
	// Required indicates if the attribute must be present.
	Required bool
}

// BodyContent represents extracted content from an HCL body.
type BodyContent struct {
	// Attributes maps attribute names to their content.
	Attributes map[string]*Attribute
}

// Attribute represents an extracted HCL attribute.
type Attribute struct {
	// Name is the attribute name.
	Name string
	// Expr is the attribute's value expression.
	Expr hcl.Expression
	// Range is the source range of the entire attribute.
	Range hcl.Range
	// NameRange is the source range of just the attribute name.
	NameRange hcl.Range
}

// ToHCLBodySchema converts a BodySchema to an hcl.BodySchema.
func ToHCLBodySchema(schema *BodySchema) *hcl.BodySchema {
	if schema == nil {
		return nil
	}

	hclSchema := &hcl.BodySchema{
		Attributes: make([]hcl.AttributeSchema, len(schema.Attributes)),
	}
	for i, attr := range schema.Attributes {
		hclSchema.Attributes[i] = hcl.AttributeSchema{
			Name:     attr.Name,
			Required: attr.Required,
		}
	}
	return hclSchema
}

// FromHCLAttribute converts an hcl.Attribute to an Attribute.
func FromHCLAttribute(attr *hcl.Attribute) *Attribute {
	if attr == nil {
		return nil
	}
	return &Attribute{
		Name:      attr.Name,
		Expr:      attr.Expr,
		Range:     attr.Range,
		NameRange: attr.NameRange,
	}
}

// Content extracts the attributes declared by schema from body.
// Unexpected attributes and blocks are reported as errors.
func Content(body hcl.Body, schema *BodySchema) (*BodyContent, hcl.Diagnostics) {
	content := &BodyContent{Attributes: make(map[string]*Attribute)}
	if body == nil {
		return content, nil
	}

	bodyContent, diags := body.Content(ToHCLBodySchema(schema))
	if bodyContent == nil {
		return content, diags
	}
	for name, attr := range bodyContent.Attributes {
		content.Attributes[name] = FromHCLAttribute(attr)
	}
	return content, diags
}
