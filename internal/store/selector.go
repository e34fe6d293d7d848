package store

import (
	"sort"
	"strings"

	"clinicore/pkg/domain"
)

// Find returns the documents matching the selector, in insertion order unless
// a sort field is requested. Sorted results break ties on id so the ordering
// is stable across runs.
func (s *Store) Find(collection string, sel domain.Selector, opts domain.FindOptions) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.state[collection]
	if !ok {
		return nil
	}
	var out []domain.Document
	for _, id := range b.order {
		doc := b.docs[id]
		if matches(doc, sel) {
			out = append(out, domain.CloneDocument(doc))
		}
	}
	if opts.SortField != "" {
		field := opts.SortField
		sort.SliceStable(out, func(i, j int) bool {
			cmp := compareValues(out[i][field], out[j][field])
			if cmp == 0 {
				cmp = strings.Compare(domain.DocumentID(out[i]), domain.DocumentID(out[j]))
			}
			if opts.SortDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func matches(doc domain.Document, sel domain.Selector) bool {
	for field, cond := range sel {
		if cond.Eq == nil && cond.Contains == "" {
			continue
		}
		value, present := doc[field]
		if cond.Contains != "" {
			text, ok := value.(string)
			if !ok || !strings.Contains(strings.ToLower(text), strings.ToLower(cond.Contains)) {
				return false
			}
			continue
		}
		if !present {
			return false
		}
		if !equalValues(value, cond.Eq) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return a == b
}

// compareValues orders two document values. Strings compare lexically, which
// also orders RFC 3339 timestamps chronologically. Absent values sort first.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs)
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch tv := v.(type) {
	case float64:
		return tv, true
	case float32:
		return float64(tv), true
	case int:
		return float64(tv), true
	case int64:
		return float64(tv), true
	default:
		return 0, false
	}
}
