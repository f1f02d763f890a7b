package schema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Violation is one failed check on one field.
type Violation struct {
	Field   string
	Message string
}

// ValidationError collects every violation found in a single pass. Callers
// always see the full list, not just the first failure.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// Fields returns the distinct violated field names in stable order.
func (e *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(e.Violations))
	var fields []string
	for _, v := range e.Violations {
		if !seen[v.Field] {
			seen[v.Field] = true
			fields = append(fields, v.Field)
		}
	}
	return fields
}

// Validate checks raw arguments against the schema and returns the normalized
// argument map. The input map is not mutated. Normalization is idempotent:
// validating the returned map again yields an equal map.
func (o *Object) Validate(raw map[string]any) (map[string]any, error) {
	normalized, violations := o.validate(raw, "")
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return normalized, nil
}

func (o *Object) validate(raw map[string]any, prefix string) (map[string]any, []Violation) {
	var violations []Violation
	normalized := make(map[string]any, len(o.Fields))

	known := make(map[string]bool, len(o.Fields))
	for i := range o.Fields {
		known[o.Fields[i].Name] = true
	}
	// Deterministic ordering for unknown-field reports.
	unknown := make([]string, 0)
	for name := range raw {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		violations = append(violations, Violation{
			Field:   prefix + name,
			Message: "unknown field",
		})
	}

	for i := range o.Fields {
		f := &o.Fields[i]
		value, present := raw[f.Name]
		if !present {
			if f.Required {
				violations = append(violations, Violation{
					Field:   prefix + f.Name,
					Message: "required field is missing",
				})
			} else if f.Default != nil {
				normalized[f.Name] = f.Default
			}
			continue
		}
		canonical, vs := f.normalize(value, prefix)
		if len(vs) > 0 {
			violations = append(violations, vs...)
			continue
		}
		normalized[f.Name] = canonical
	}

	for _, c := range o.Constraints {
		for _, v := range c.Check(normalized) {
			violations = append(violations, Violation{Field: prefix + v.Field, Message: v.Message})
		}
	}
	return normalized, violations
}

func (f *Field) normalize(value any, prefix string) (any, []Violation) {
	fail := func(format string, args ...any) (any, []Violation) {
		return nil, []Violation{{Field: prefix + f.Name, Message: fmt.Sprintf(format, args...)}}
	}

	switch f.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return fail("must be a string, got %T", value)
		}
		if len(f.Enum) > 0 && !containsString(f.Enum, s) {
			return fail("must be one of %v", f.Enum)
		}
		if f.Pattern != nil && !f.Pattern.MatchString(s) {
			return fail("must match %s", f.Pattern)
		}
		return s, nil

	case KindNumericString:
		switch v := value.(type) {
		case string:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return fail("must be a numeric string")
			}
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case int:
			return strconv.FormatInt(int64(v), 10), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		default:
			return fail("must be a number or numeric string, got %T", value)
		}

	case KindInteger:
		var n int64
		switch v := value.(type) {
		case float64:
			if v != math.Trunc(v) {
				return fail("must be an integer, got %v", v)
			}
			n = int64(v)
		case int:
			n = int64(v)
		case int64:
			n = v
		case string:
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fail("must be an integer, got %q", v)
			}
			n = parsed
		default:
			return fail("must be an integer, got %T", value)
		}
		if len(f.IntEnum) > 0 && !containsInt(f.IntEnum, n) {
			return fail("must be one of %v", f.IntEnum)
		}
		if f.Min != nil && n < *f.Min {
			return fail("must be at least %d", *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			return fail("must be at most %d", *f.Max)
		}
		return n, nil

	case KindNumber:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		default:
			return fail("must be a number, got %T", value)
		}

	case KindBoolean:
		b, ok := value.(bool)
		if !ok {
			return fail("must be a boolean, got %T", value)
		}
		return b, nil

	case KindArray:
		items, ok := value.([]any)
		if !ok {
			// A bare scalar where an array is declared is always an error,
			// never wrapped silently.
			return fail("must be an array, got %T", value)
		}
		if f.MaxItems > 0 && len(items) > f.MaxItems {
			return fail("must contain at most %d items", f.MaxItems)
		}
		var violations []Violation
		normalized := make([]any, 0, len(items))
		for i, item := range items {
			elem, ok := item.(map[string]any)
			if !ok {
				violations = append(violations, Violation{
					Field:   fmt.Sprintf("%s%s[%d]", prefix, f.Name, i),
					Message: fmt.Sprintf("must be an object, got %T", item),
				})
				continue
			}
			elemPrefix := fmt.Sprintf("%s%s[%d].", prefix, f.Name, i)
			normalizedElem, vs := f.Items.validate(elem, elemPrefix)
			if len(vs) > 0 {
				violations = append(violations, vs...)
				continue
			}
			normalized = append(normalized, normalizedElem)
		}
		if len(violations) > 0 {
			return nil, violations
		}
		return normalized, nil
	}

	return fail("unsupported kind %v", f.Kind)
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsInt(set []int64, n int64) bool {
	for _, v := range set {
		if v == n {
			return true
		}
	}
	return false
}
