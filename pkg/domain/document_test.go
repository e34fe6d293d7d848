package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCloneDocumentIsDeep(t *testing.T) {
	in := Document{
		"id":     "a",
		"nested": map[string]any{"k": "v"},
		"list":   []any{map[string]any{"x": 1.0}},
	}
	out := CloneDocument(in)
	out["nested"].(map[string]any)["k"] = "changed"
	out["list"].([]any)[0].(map[string]any)["x"] = 2.0
	if in["nested"].(map[string]any)["k"] != "v" {
		t.Fatal("nested map shared")
	}
	if in["list"].([]any)[0].(map[string]any)["x"] != 1.0 {
		t.Fatal("nested slice shared")
	}
	if CloneDocument(nil) != nil {
		t.Fatal("nil clone must stay nil")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	paid := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	in := Transaction{
		ID:     "t1",
		Type:   TransactionIncome,
		Amount: decimal.RequireFromString("199.90"),
		Status: TransactionPaid,
		Date:   paid,
		PaidAt: &paid,
	}
	doc, err := EncodeDocument(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, ok := doc["amount"].(float64); !ok {
		t.Fatalf("amount encoded as %T, want JSON number", doc["amount"])
	}
	if decimal.MarshalJSONWithoutQuotes {
		t.Fatal("encoding must not flip shopspring's global quote setting")
	}
	var out Transaction
	if err := DecodeDocument(doc, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Amount.Equal(in.Amount) {
		t.Fatalf("amount round trip: %s != %s", out.Amount, in.Amount)
	}
	if out.PaidAt == nil || !out.PaidAt.Equal(paid) {
		t.Fatalf("paid_at round trip: %v", out.PaidAt)
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	doc := Document{"id": "p1", "name": "Rex", "legacy_field": "x"}
	var p Patient
	if err := DecodeDocument(doc, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != "p1" || p.Name != "Rex" {
		t.Fatalf("patient = %+v", p)
	}
}

func TestDocumentTime(t *testing.T) {
	doc := Document{"when": "2026-01-02T03:04:05Z", "junk": "not a time"}
	got, ok := DocumentTime(doc, "when")
	if !ok || !got.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("got %v ok=%v", got, ok)
	}
	if _, ok := DocumentTime(doc, "junk"); ok {
		t.Fatal("unparseable value must report !ok")
	}
	if _, ok := DocumentTime(doc, "absent"); ok {
		t.Fatal("absent field must report !ok")
	}
}
