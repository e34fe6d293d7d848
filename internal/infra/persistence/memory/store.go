// Package memory exposes the in-memory document store as a persistence
// driver. Nothing survives process exit; it backs tests and ephemeral runs.
package memory

import (
	"clinicore/internal/schema"
	"clinicore/internal/store"
	"clinicore/pkg/domain"
)

var _ domain.PersistentStore = (*store.Store)(nil)

// Open returns an empty in-memory store over the given registry.
func Open(registry *schema.Registry) *store.Store {
	return store.New(registry)
}
