package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Document is one persisted record in its raw JSON shape: values are strings,
// numbers, bools, nested maps, arrays, or nil. The raw shape is what schema
// validation, migrations, and shallow patches operate on.
type Document = map[string]any

// CloneDocument returns a deep copy sharing no mutable state with the input.
func CloneDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	return cloneValue(doc).(Document)
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case Document:
		out := make(Document, len(tv))
		for k, item := range tv {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// EncodeDocument converts a typed record into its raw document shape.
func EncodeDocument(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// DecodeDocument converts a raw document into the typed record pointed to by
// out. Fields the type does not know are ignored, which keeps legacy payload
// remnants harmless to readers.
func DecodeDocument(doc Document, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// DocumentID returns the primary key of a document, empty when unset.
func DocumentID(doc Document) string {
	id, _ := doc["id"].(string)
	return id
}

// DocumentString returns the string value of a top-level field, empty when the
// field is absent or not a string.
func DocumentString(doc Document, field string) string {
	s, _ := doc[field].(string)
	return s
}

// DocumentTime parses an RFC 3339 timestamp from a top-level field. ok is
// false when the field is absent, null, or unparseable.
func DocumentTime(doc Document, field string) (time.Time, bool) {
	s, _ := doc[field].(string)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
