package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"clinicore/internal/migrate"
	"clinicore/internal/schema"
	"clinicore/pkg/domain"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(context.Background(), path, schema.Default(), migrate.Default())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.db")
	ctx := context.Background()

	s := openTestStore(t, path)
	if _, err := s.Insert(ctx, domain.CollectionPatients, domain.Document{
		"id": "p1", "name": "Rex", "scope": "VET",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	defer func() { _ = reopened.Close() }()
	doc, ok := reopened.Get(domain.CollectionPatients, "p1")
	if !ok || doc["name"] != "Rex" {
		t.Fatalf("document lost across reopen: %v", doc)
	}
}

func TestRemovePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.db")
	ctx := context.Background()

	s := openTestStore(t, path)
	if _, err := s.Insert(ctx, domain.CollectionPatients, domain.Document{
		"id": "p1", "name": "Rex", "scope": "VET",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.Remove(ctx, domain.CollectionPatients, "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	defer func() { _ = reopened.Close() }()
	if _, ok := reopened.Get(domain.CollectionPatients, "p1"); ok {
		t.Fatal("removed document resurrected on reopen")
	}
}

func TestOpenMigratesOldBuckets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE state (bucket TEXT PRIMARY KEY, version INTEGER NOT NULL, payload BLOB NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	payload, _ := json.Marshal([]domain.Document{
		{"id": "p1", "name": "Joana", "practice": "human"},
	})
	if _, err := db.Exec(`INSERT INTO state(bucket,version,payload) VALUES(?,?,?)`,
		domain.CollectionPatients, 1, payload); err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw: %v", err)
	}

	s := openTestStore(t, path)
	doc, ok := s.Get(domain.CollectionPatients, "p1")
	if !ok {
		t.Fatal("expected migrated document")
	}
	if doc["scope"] != "HUMAN" {
		t.Fatalf("expected scope HUMAN after migration, got %v", doc["scope"])
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// The migrated state must be written back under the current version.
	db, err = sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen raw: %v", err)
	}
	defer func() { _ = db.Close() }()
	var version int
	if err := db.QueryRow(`SELECT version FROM state WHERE bucket = ?`, domain.CollectionPatients).Scan(&version); err != nil {
		t.Fatalf("query version: %v", err)
	}
	if version != schema.PatientsVersion {
		t.Fatalf("expected persisted version %d, got %d", schema.PatientsVersion, version)
	}
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE state (bucket TEXT PRIMARY KEY, version INTEGER NOT NULL, payload BLOB NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	payload, _ := json.Marshal([]domain.Document{{"id": "p1", "name": "Rex"}})
	if _, err := db.Exec(`INSERT INTO state(bucket,version,payload) VALUES(?,?,?)`,
		domain.CollectionPatients, schema.PatientsVersion+5, payload); err != nil {
		t.Fatalf("seed future row: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw: %v", err)
	}

	if _, err := Open(context.Background(), path, schema.Default(), migrate.Default()); err == nil {
		t.Fatal("expected open to fail on newer stored schema")
	}
}
