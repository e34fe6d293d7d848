// Package schema declares the shape, version, and field constraints of every
// collection in the store. The registry drives write-time validation and
// tells the migration engine which version a collection should be at.
package schema

import (
	"fmt"
	"sort"

	"clinicore/pkg/domain"
)

// FieldType is the JSON shape a field value must have.
type FieldType string

// Field value shapes.
const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldObject  FieldType = "object"
	FieldArray   FieldType = "array"
	FieldAny     FieldType = "any"
)

// Field constrains one top-level document field.
type Field struct {
	Type     FieldType
	Required bool
	// Enum restricts a string field to a fixed value set.
	Enum []string
	// Nullable permits an explicit null value.
	Nullable bool
	// Positive requires a number field to be strictly greater than zero.
	Positive bool
	// Open marks an object field whose keys are free-form clinical payload;
	// nested validation is skipped entirely.
	Open bool
	// Keys validates the nested keys of a closed object field. Unknown nested
	// keys are rejected the same way unknown top-level fields are.
	Keys map[string]Field
}

// Schema describes one collection: its current version and field constraints.
type Schema struct {
	Collection string
	Version    int
	Fields     map[string]Field
}

// HasUpdatedAt reports whether the schema declares an updated_at timestamp,
// which mutating store operations maintain automatically.
func (s Schema) HasUpdatedAt() bool {
	_, ok := s.Fields["updated_at"]
	return ok
}

// Validate checks a full document against the schema. Unknown top-level
// fields are rejected unless they belong to an open map.
func (s Schema) Validate(doc domain.Document) error {
	for name := range doc {
		if _, ok := s.Fields[name]; !ok {
			return domain.ValidationError{Collection: s.Collection, Field: name, Reason: "unknown field"}
		}
	}
	for name, field := range s.Fields {
		value, present := doc[name]
		if !present || value == nil {
			if field.Required {
				return domain.ValidationError{Collection: s.Collection, Field: name, Reason: "required field missing"}
			}
			continue
		}
		if err := s.validateValue(name, field, value); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePartial checks a patch payload: only the supplied fields are
// validated, so migrated documents carrying legacy remnants stay patchable.
// The primary key is immutable and rejected outright.
func (s Schema) ValidatePartial(fields domain.Document) error {
	for name, value := range fields {
		if name == "id" {
			return domain.ValidationError{Collection: s.Collection, Field: "id", Reason: "primary key is immutable"}
		}
		field, ok := s.Fields[name]
		if !ok {
			return domain.ValidationError{Collection: s.Collection, Field: name, Reason: "unknown field"}
		}
		if value == nil {
			if field.Required {
				return domain.ValidationError{Collection: s.Collection, Field: name, Reason: "required field cannot be null"}
			}
			continue
		}
		if err := s.validateValue(name, field, value); err != nil {
			return err
		}
	}
	return nil
}

func (s Schema) validateValue(name string, field Field, value any) error {
	fail := func(reason string) error {
		return domain.ValidationError{Collection: s.Collection, Field: name, Reason: reason}
	}
	switch field.Type {
	case FieldString:
		str, ok := value.(string)
		if !ok {
			return fail("expected string")
		}
		if field.Required && str == "" {
			return fail("required field empty")
		}
		if len(field.Enum) > 0 && !containsString(field.Enum, str) {
			return fail(fmt.Sprintf("value %q not in %v", str, field.Enum))
		}
	case FieldNumber:
		num, ok := asNumber(value)
		if !ok {
			return fail("expected number")
		}
		if field.Positive && num <= 0 {
			return fail("must be greater than zero")
		}
	case FieldBoolean:
		if _, ok := value.(bool); !ok {
			return fail("expected boolean")
		}
	case FieldObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return fail("expected object")
		}
		if field.Open || field.Keys == nil {
			return nil
		}
		for key, nested := range obj {
			spec, known := field.Keys[key]
			if !known {
				return domain.ValidationError{Collection: s.Collection, Field: name + "." + key, Reason: "unknown field"}
			}
			if nested == nil {
				continue
			}
			if err := s.validateValue(name+"."+key, spec, nested); err != nil {
				return err
			}
		}
	case FieldArray:
		if _, ok := value.([]any); !ok {
			return fail("expected array")
		}
	case FieldAny:
		// free-form payload
	default:
		return fail(fmt.Sprintf("unhandled field type %q", field.Type))
	}
	return nil
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func containsString(set []string, s string) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

// Registry is the central schema catalogue keyed by collection name.
type Registry struct {
	schemas map[string]Schema
}

// NewRegistry builds an empty registry. Most callers want Default.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]Schema)}
}

// Register adds or replaces a collection schema.
func (r *Registry) Register(s Schema) {
	r.schemas[s.Collection] = s
}

// Describe returns the schema for a collection.
func (r *Registry) Describe(collection string) (Schema, bool) {
	s, ok := r.schemas[collection]
	return s, ok
}

// Collections returns the registered collection names sorted for determinism.
func (r *Registry) Collections() []string {
	out := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
