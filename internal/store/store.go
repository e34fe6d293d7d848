// Package store implements the in-memory document store that backs every
// persistence driver. State is guarded by a single mutex: the store assumes
// one logical writer per process, so reads clone committed state and writes
// serialize behind the lock.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clinicore/internal/schema"
	"clinicore/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

type bucket struct {
	docs  map[string]domain.Document
	order []string
}

func newBucket() *bucket {
	return &bucket{docs: make(map[string]domain.Document)}
}

// Store is a mutex-guarded document store validated against a schema registry.
type Store struct {
	mu       sync.RWMutex
	registry *schema.Registry
	state    map[string]*bucket
	nowFn    func() time.Time
}

// New constructs an empty store over the provided registry. A nil registry
// falls back to the default collection catalogue.
func New(registry *schema.Registry) *Store {
	if registry == nil {
		registry = schema.Default()
	}
	s := &Store{
		registry: registry,
		state:    make(map[string]*bucket),
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
	for _, collection := range registry.Collections() {
		s.state[collection] = newBucket()
	}
	return s
}

// Registry exposes the schema registry the store validates against.
func (s *Store) Registry() *schema.Registry { return s.registry }

// SetNow overrides the clock, for tests.
func (s *Store) SetNow(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = fn
}

func (s *Store) bucketFor(collection string) (*bucket, schema.Schema, error) {
	sc, ok := s.registry.Describe(collection)
	if !ok {
		return nil, schema.Schema{}, fmt.Errorf("unknown collection %q", collection)
	}
	b, ok := s.state[collection]
	if !ok {
		b = newBucket()
		s.state[collection] = b
	}
	return b, sc, nil
}

// Insert stores a new document. The id must already be assigned; colliding
// ids fail with DuplicateKeyError and schema violations with ValidationError.
func (s *Store) Insert(_ context.Context, collection string, doc domain.Document) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, sc, err := s.bucketFor(collection)
	if err != nil {
		return nil, err
	}
	if err := sc.Validate(doc); err != nil {
		return nil, err
	}
	id := domain.DocumentID(doc)
	if id == "" {
		return nil, domain.ValidationError{Collection: collection, Field: "id", Reason: "required field missing"}
	}
	if _, exists := b.docs[id]; exists {
		return nil, domain.DuplicateKeyError{Collection: collection, ID: id}
	}
	stored := domain.CloneDocument(doc)
	if sc.HasUpdatedAt() {
		stored["updated_at"] = s.nowFn().Format(time.RFC3339Nano)
	}
	b.docs[id] = stored
	b.order = append(b.order, id)
	return domain.CloneDocument(stored), nil
}

// Get returns a document by id from committed state.
func (s *Store) Get(collection, id string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.state[collection]
	if !ok {
		return nil, false
	}
	doc, ok := b.docs[id]
	if !ok {
		return nil, false
	}
	return domain.CloneDocument(doc), true
}

// Patch merges the given top-level fields into an existing document. Nested
// values are replaced wholesale. Missing ids fail with NotFoundError.
func (s *Store) Patch(_ context.Context, collection, id string, fields domain.Document) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, sc, err := s.bucketFor(collection)
	if err != nil {
		return nil, err
	}
	if err := sc.ValidatePartial(fields); err != nil {
		return nil, err
	}
	current, ok := b.docs[id]
	if !ok {
		return nil, domain.NotFoundError{Collection: collection, ID: id}
	}
	next := domain.CloneDocument(current)
	for name, value := range fields {
		next[name] = cloneAny(value)
	}
	if sc.HasUpdatedAt() {
		next["updated_at"] = s.nowFn().Format(time.RFC3339Nano)
	}
	b.docs[id] = next
	return domain.CloneDocument(next), nil
}

// Remove deletes a document by id. Removing a missing id is a no-op.
func (s *Store) Remove(_ context.Context, collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, _, err := s.bucketFor(collection)
	if err != nil {
		return false, err
	}
	if _, ok := b.docs[id]; !ok {
		return false, nil
	}
	delete(b.docs, id)
	for i, existing := range b.order {
		if existing == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Count returns the number of documents in a collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.state[collection]
	if !ok {
		return 0
	}
	return len(b.docs)
}

// Close releases nothing for the in-memory driver.
func (s *Store) Close() error { return nil }

func cloneAny(v any) any {
	switch tv := v.(type) {
	case domain.Document:
		return domain.CloneDocument(tv)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = cloneAny(item)
		}
		return out
	default:
		return v
	}
}
