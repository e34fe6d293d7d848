package domain

import "context"

// Condition constrains one document field in a selector. Eq matches the field
// value exactly, Contains matches a case-insensitive substring of a string
// field. A zero condition constrains nothing and matches every document, so
// an empty search query falls through to a full listing.
type Condition struct {
	Eq       any
	Contains string
}

// Selector is a conjunction of field conditions; an empty selector matches
// every document.
type Selector map[string]Condition

// FindOptions shape a find result. Without a sort field documents come back
// in insertion order; equal sort keys break ties by id for determinism.
type FindOptions struct {
	SortField string
	SortDesc  bool
	Limit     int
}

// PersistentStore is the contract every storage backend fulfils. It is the
// sole persistence gateway: one logical writer per process, reads served from
// committed state snapshots.
type PersistentStore interface {
	// Insert stores a new document keyed by its id field. Fails with
	// DuplicateKeyError when the id already exists and ValidationError when
	// the document violates its collection schema.
	Insert(ctx context.Context, collection string, doc Document) (Document, error)
	// Get returns a document by id from committed state.
	Get(collection, id string) (Document, bool)
	// Find filters a collection by selector with optional sort and limit.
	Find(collection string, sel Selector, opts FindOptions) []Document
	// Patch merges the given top-level fields into an existing document.
	// Nested values are replaced wholesale, never deep-merged. Fails with
	// NotFoundError when the id is missing.
	Patch(ctx context.Context, collection, id string, fields Document) (Document, error)
	// Remove deletes a document by id. Removing a missing id is a no-op; the
	// returned bool reports whether a document was deleted.
	Remove(ctx context.Context, collection, id string) (bool, error)
	// Count returns the number of documents in a collection.
	Count(collection string) int
	// Close releases backend resources. The store is unusable afterwards.
	Close() error
}
