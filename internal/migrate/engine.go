// Package migrate brings persisted documents from their stored schema version
// up to the registry's current version through ordered chains of pure
// transforms.
package migrate

import (
	"fmt"

	"clinicore/pkg/domain"
)

// Func migrates one document from a source version to the next. Functions
// must be total and only add, rename, or default fields; data they do not
// understand is left in place.
type Func func(domain.Document) domain.Document

// Engine holds the per-collection migration chains indexed by source version.
type Engine struct {
	chains map[string]map[int]Func
}

// NewEngine returns an engine with no chains registered.
func NewEngine() *Engine {
	return &Engine{chains: make(map[string]map[int]Func)}
}

// Register installs the transform that migrates collection documents from
// fromVersion to fromVersion+1.
func (e *Engine) Register(collection string, fromVersion int, fn Func) {
	chain, ok := e.chains[collection]
	if !ok {
		chain = make(map[int]Func)
		e.chains[collection] = chain
	}
	chain[fromVersion] = fn
}

// Apply migrates a document from storedVersion to currentVersion. Applying to
// a document already at the current version is a no-op. A missing or panicking
// step surfaces as a SchemaConflictError; the input document is never mutated.
func (e *Engine) Apply(collection string, storedVersion, currentVersion int, doc domain.Document) (out domain.Document, err error) {
	if storedVersion == currentVersion {
		return domain.CloneDocument(doc), nil
	}
	if storedVersion > currentVersion {
		return nil, domain.SchemaConflictError{
			Collection:    collection,
			StoredVersion: storedVersion,
			WantVersion:   currentVersion,
		}
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = domain.SchemaConflictError{
				Collection:    collection,
				StoredVersion: storedVersion,
				WantVersion:   currentVersion,
				Err:           fmt.Errorf("migration panicked: %v", r),
			}
		}
	}()
	out = domain.CloneDocument(doc)
	for v := storedVersion; v < currentVersion; v++ {
		fn, ok := e.chains[collection][v]
		if !ok {
			return nil, domain.SchemaConflictError{
				Collection:    collection,
				StoredVersion: storedVersion,
				WantVersion:   currentVersion,
				Err:           fmt.Errorf("no migration from v%d", v),
			}
		}
		out = fn(out)
	}
	return out, nil
}

// Passthrough keeps a document untouched across a version bump.
func Passthrough(doc domain.Document) domain.Document { return doc }
