// Package schema describes tool parameters as a tagged variant and validates
// raw call arguments against those descriptions. Every schema is closed:
// fields not declared here are rejected rather than forwarded upstream.
package schema

import (
	"fmt"
	"regexp"
)

// Kind discriminates the parameter variants. Validation switches exhaustively
// on it, so adding a kind without a validator branch is a compile-visible gap.
type Kind int

const (
	// KindString is a plain string parameter.
	KindString Kind = iota
	// KindNumericString is a string on the wire that callers routinely send
	// as a JSON number (qty, price, leverage, margin). Both are accepted and
	// canonicalized to a string.
	KindNumericString
	// KindInteger accepts JSON numbers and numeric strings and canonicalizes
	// to int64. The upstream API is inconsistent about these (timestamps and
	// limits arrive either way depending on the client).
	KindInteger
	// KindNumber is a float parameter. Canonical form is float64.
	KindNumber
	// KindBoolean accepts only true/false.
	KindBoolean
	// KindArray is an array of objects described by Field.Items.
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumericString:
		return "numeric string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field describes one parameter of a tool.
type Field struct {
	Name        string
	Kind        Kind
	Description string
	Required    bool

	// Default is applied when the field is absent. It must already be in the
	// field's canonical form (string for KindNumericString, int64 for
	// KindInteger) so that normalization stays idempotent.
	Default any

	// Enum restricts string kinds to a fixed legal set.
	Enum []string
	// IntEnum restricts KindInteger to a fixed legal set.
	IntEnum []int64
	// Min and Max bound KindInteger values inclusively.
	Min, Max *int64
	// Pattern constrains KindString values when set.
	Pattern *regexp.Regexp

	// Items describes array elements; required for KindArray.
	Items *Object
	// MaxItems caps array length when > 0.
	MaxItems int
}

// Object is the root (or array-element) schema: an ordered field list plus
// cross-field constraints.
type Object struct {
	Fields      []Field
	Constraints []Constraint
}

// Constraint is a cross-field rule checked against normalized arguments.
type Constraint interface {
	// Check returns violations found in args, which already holds normalized
	// values with defaults applied.
	Check(args map[string]any) []Violation
	// FieldRefs lists the field names the constraint reads, for catalog
	// consistency checks.
	FieldRefs() []string
}

// RequireIfEquals makes Then mandatory whenever When equals Equals.
// Example: orderType=Limit requires price.
type RequireIfEquals struct {
	When   string
	Equals string
	Then   string
}

func (c RequireIfEquals) Check(args map[string]any) []Violation {
	v, ok := args[c.When].(string)
	if !ok || v != c.Equals {
		return nil
	}
	if _, present := args[c.Then]; present {
		return nil
	}
	return []Violation{{
		Field:   c.Then,
		Message: fmt.Sprintf("required when %s is %q", c.When, c.Equals),
	}}
}

func (c RequireIfEquals) FieldRefs() []string { return []string{c.When, c.Then} }

// RequireOneOf demands that at least one of Fields is present.
// Example: amend_order needs orderId or orderLinkId.
type RequireOneOf struct {
	Fields []string
}

func (c RequireOneOf) Check(args map[string]any) []Violation {
	for _, name := range c.Fields {
		if _, present := args[name]; present {
			return nil
		}
	}
	vs := make([]Violation, 0, len(c.Fields))
	for _, name := range c.Fields {
		vs = append(vs, Violation{
			Field:   name,
			Message: fmt.Sprintf("one of %v is required", c.Fields),
		})
	}
	return vs
}

func (c RequireOneOf) FieldRefs() []string { return c.Fields }

// RequireWith makes Then mandatory whenever When is present.
// Example: trailingStop requires activePrice.
type RequireWith struct {
	When string
	Then string
}

func (c RequireWith) Check(args map[string]any) []Violation {
	if _, present := args[c.When]; !present {
		return nil
	}
	if _, present := args[c.Then]; present {
		return nil
	}
	return []Violation{{
		Field:   c.Then,
		Message: fmt.Sprintf("required when %s is set", c.When),
	}}
}

func (c RequireWith) FieldRefs() []string { return []string{c.When, c.Then} }

// Problems reports internal inconsistencies: duplicate field names, array
// fields without an element schema, constraints referencing unknown fields.
// A healthy catalog returns nil for every schema; the registry enforces this
// at construction.
func (o *Object) Problems() []string {
	var problems []string
	seen := make(map[string]bool, len(o.Fields))
	for _, f := range o.Fields {
		if seen[f.Name] {
			problems = append(problems, fmt.Sprintf("duplicate field %q", f.Name))
		}
		seen[f.Name] = true
		if f.Kind == KindArray && f.Items == nil {
			problems = append(problems, fmt.Sprintf("array field %q has no element schema", f.Name))
		}
		if f.Kind == KindArray && f.Items != nil {
			for _, p := range f.Items.Problems() {
				problems = append(problems, fmt.Sprintf("%s items: %s", f.Name, p))
			}
		}
		if f.Required && f.Default != nil {
			problems = append(problems, fmt.Sprintf("field %q is required and has a default", f.Name))
		}
	}
	for _, c := range o.Constraints {
		for _, ref := range c.FieldRefs() {
			if !seen[ref] {
				problems = append(problems, fmt.Sprintf("constraint references unknown field %q", ref))
			}
		}
	}
	return problems
}

// JSONSchema renders the object as JSON Schema properties for tool listing.
func (o *Object) JSONSchema() (properties map[string]any, required []string) {
	properties = make(map[string]any, len(o.Fields))
	for _, f := range o.Fields {
		properties[f.Name] = f.jsonSchema()
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return properties, required
}

func (f *Field) jsonSchema() map[string]any {
	node := map[string]any{}
	if f.Description != "" {
		node["description"] = f.Description
	}
	switch f.Kind {
	case KindString, KindNumericString:
		node["type"] = "string"
		if len(f.Enum) > 0 {
			node["enum"] = f.Enum
		}
		if f.Pattern != nil {
			node["pattern"] = f.Pattern.String()
		}
	case KindInteger:
		node["type"] = "integer"
		if len(f.IntEnum) > 0 {
			node["enum"] = f.IntEnum
		}
		if f.Min != nil {
			node["minimum"] = *f.Min
		}
		if f.Max != nil {
			node["maximum"] = *f.Max
		}
	case KindNumber:
		node["type"] = "number"
	case KindBoolean:
		node["type"] = "boolean"
	case KindArray:
		node["type"] = "array"
		if f.MaxItems > 0 {
			node["maxItems"] = f.MaxItems
		}
		if f.Items != nil {
			props, req := f.Items.JSONSchema()
			items := map[string]any{
				"type":       "object",
				"properties": props,
			}
			if len(req) > 0 {
				items["required"] = req
			}
			node["items"] = items
		}
	}
	if f.Default != nil {
		node["default"] = f.Default
	}
	return node
}

// Int is a convenience for bound literals in field tables.
func Int(v int64) *int64 { return &v }
