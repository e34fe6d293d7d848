package postgres

import (
	"context"
	"os"
	"testing"

	"clinicore/internal/migrate"
	"clinicore/internal/schema"
	"clinicore/pkg/domain"
)

// Exercises a real server when one is available; CI without Postgres skips.
func TestStoreAgainstLiveServer(t *testing.T) {
	dsn := os.Getenv("CLINICORE_POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("CLINICORE_POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn, schema.Default(), migrate.Default())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := s.Insert(ctx, domain.CollectionPatients, domain.Document{
		"id": "pg-p1", "name": "Rex", "scope": "VET",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	t.Cleanup(func() { _, _ = s.Remove(ctx, domain.CollectionPatients, "pg-p1") })

	reopened, err := Open(ctx, dsn, schema.Default(), migrate.Default())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	doc, ok := reopened.Get(domain.CollectionPatients, "pg-p1")
	if !ok || doc["name"] != "Rex" {
		t.Fatalf("document lost across reopen: %v", doc)
	}
}
