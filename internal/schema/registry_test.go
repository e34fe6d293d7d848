package schema

import (
	"errors"
	"testing"

	"clinicore/pkg/domain"
)

func testSchema() Schema {
	return Schema{
		Collection: "widgets",
		Version:    1,
		Fields: map[string]Field{
			"id":     {Type: FieldString, Required: true},
			"name":   {Type: FieldString, Required: true},
			"kind":   {Type: FieldString, Enum: []string{"a", "b"}},
			"amount": {Type: FieldNumber, Positive: true},
			"open":   {Type: FieldObject, Open: true},
			"eye": {Type: FieldObject, Keys: map[string]Field{
				"iop": {Type: FieldNumber},
			}},
			"tags":       {Type: FieldArray},
			"active":     {Type: FieldBoolean},
			"updated_at": {Type: FieldString},
		},
	}
}

func validationField(t *testing.T, err error) string {
	t.Helper()
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	return verr.Field
}

func TestValidateRejectsUnknownField(t *testing.T) {
	s := testSchema()
	err := s.Validate(domain.Document{"id": "w1", "name": "x", "bogus": 1})
	if got := validationField(t, err); got != "bogus" {
		t.Fatalf("field = %q", got)
	}
}

func TestValidateRequiredRules(t *testing.T) {
	s := testSchema()
	if err := s.Validate(domain.Document{"id": "w1"}); validationField(t, err) != "name" {
		t.Fatal("missing required field must name it")
	}
	if err := s.Validate(domain.Document{"id": "w1", "name": ""}); validationField(t, err) != "name" {
		t.Fatal("empty required string must be rejected")
	}
}

func TestValidateEnumAndNumber(t *testing.T) {
	s := testSchema()
	base := domain.Document{"id": "w1", "name": "x"}

	bad := domain.CloneDocument(base)
	bad["kind"] = "c"
	if err := s.Validate(bad); validationField(t, err) != "kind" {
		t.Fatal("enum violation must name the field")
	}

	bad = domain.CloneDocument(base)
	bad["amount"] = 0.0
	if err := s.Validate(bad); validationField(t, err) != "amount" {
		t.Fatal("non-positive amount must be rejected")
	}

	good := domain.CloneDocument(base)
	good["kind"] = "a"
	good["amount"] = 12.5
	if err := s.Validate(good); err != nil {
		t.Fatalf("valid doc rejected: %v", err)
	}
}

func TestValidateNestedObject(t *testing.T) {
	s := testSchema()
	err := s.Validate(domain.Document{
		"id": "w1", "name": "x",
		"eye": map[string]any{"unknown": 1},
	})
	if got := validationField(t, err); got != "eye.unknown" {
		t.Fatalf("field = %q", got)
	}
	// Open objects take anything.
	err = s.Validate(domain.Document{
		"id": "w1", "name": "x",
		"open": map[string]any{"anything": map[string]any{"deep": true}},
	})
	if err != nil {
		t.Fatalf("open object rejected: %v", err)
	}
}

func TestValidatePartial(t *testing.T) {
	s := testSchema()
	if err := s.ValidatePartial(domain.Document{"id": "other"}); validationField(t, err) != "id" {
		t.Fatal("patching the primary key must be rejected")
	}
	if err := s.ValidatePartial(domain.Document{"name": nil}); validationField(t, err) != "name" {
		t.Fatal("nulling a required field must be rejected")
	}
	if err := s.ValidatePartial(domain.Document{"kind": nil, "amount": 3.0}); err != nil {
		t.Fatalf("valid patch rejected: %v", err)
	}
}

func TestDefaultRegistryCoversAllCollections(t *testing.T) {
	reg := Default()
	names := reg.Collections()
	if len(names) != len(domain.Collections) {
		t.Fatalf("registry has %d collections, want %d", len(names), len(domain.Collections))
	}
	for _, name := range domain.Collections {
		sc, ok := reg.Describe(name)
		if !ok {
			t.Fatalf("collection %s not registered", name)
		}
		if sc.Collection != name {
			t.Fatalf("schema %s registered under %s", sc.Collection, name)
		}
		if _, ok := sc.Fields["id"]; !ok {
			t.Fatalf("collection %s has no id field", name)
		}
	}
}
