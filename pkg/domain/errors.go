package domain

import "fmt"

// ValidationError reports a document that violates its collection schema.
// Field names the offending field.
type ValidationError struct {
	Collection string
	Field      string
	Reason     string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid field %q: %s", e.Collection, e.Field, e.Reason)
}

// DuplicateKeyError reports an insert with an id that already exists. Ids are
// store-assigned, so hitting this indicates a caller bug and is not retried.
type DuplicateKeyError struct {
	Collection string
	ID         string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: document %q already exists", e.Collection, e.ID)
}

// NotFoundError reports a patch or update against a missing id. Plain removal
// is idempotent and never raises it.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s: document %q not found", e.Collection, e.ID)
}

// SchemaConflictError reports persisted data that no migration chain bridges
// to the registry's current version. It is fatal at store initialization;
// recovery is adding a migration step or wiping the persisted store by hand,
// never an automatic wipe.
type SchemaConflictError struct {
	Collection    string
	StoredVersion int
	WantVersion   int
	Err           error
}

func (e SchemaConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: schema conflict migrating v%d to v%d: %v", e.Collection, e.StoredVersion, e.WantVersion, e.Err)
	}
	return fmt.Sprintf("%s: schema conflict: stored v%d, registry knows v%d", e.Collection, e.StoredVersion, e.WantVersion)
}

func (e SchemaConflictError) Unwrap() error { return e.Err }
