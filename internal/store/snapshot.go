package store

import (
	"fmt"

	"clinicore/internal/migrate"
	"clinicore/pkg/domain"
)

// BucketSnapshot carries one collection's documents in insertion order plus
// the schema version they were written under.
type BucketSnapshot struct {
	Version int               `json:"version"`
	Docs    []domain.Document `json:"docs"`
}

// Snapshot is the full exportable state of a store, keyed by collection.
type Snapshot map[string]BucketSnapshot

// Export captures a deep copy of committed state tagged with the current
// schema version of each collection.
func (s *Store) Export() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(Snapshot, len(s.state))
	for collection, b := range s.state {
		sc, ok := s.registry.Describe(collection)
		if !ok {
			continue
		}
		docs := make([]domain.Document, 0, len(b.order))
		for _, id := range b.order {
			docs = append(docs, domain.CloneDocument(b.docs[id]))
		}
		snap[collection] = BucketSnapshot{Version: sc.Version, Docs: docs}
	}
	return snap
}

// Import replaces committed state with the snapshot, migrating every document
// from the snapshot's recorded version to the registry's current version.
// Collections the registry does not know are skipped. A failing migration or
// a snapshot newer than the registry aborts the import and leaves the store
// untouched.
func (s *Store) Import(snap Snapshot, engine *migrate.Engine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]*bucket, len(s.registry.Collections()))
	for _, collection := range s.registry.Collections() {
		next[collection] = newBucket()
	}
	for collection, bs := range snap {
		sc, ok := s.registry.Describe(collection)
		if !ok {
			continue
		}
		b := next[collection]
		for _, doc := range bs.Docs {
			migrated, err := engine.Apply(collection, bs.Version, sc.Version, doc)
			if err != nil {
				return err
			}
			id := domain.DocumentID(migrated)
			if id == "" {
				return fmt.Errorf("import %s: document without id", collection)
			}
			if _, exists := b.docs[id]; exists {
				return domain.DuplicateKeyError{Collection: collection, ID: id}
			}
			b.docs[id] = migrated
			b.order = append(b.order, id)
		}
	}
	s.state = next
	return nil
}
