package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"clinicore/internal/schema"
	"clinicore/internal/store"
	"clinicore/pkg/domain"
)

func TestRunPopulatesEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := store.New(schema.Default())

	if err := Run(ctx, s, zerolog.Nop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Count(domain.CollectionDrugs) != len(Drugs()) {
		t.Fatalf("drugs count = %d", s.Count(domain.CollectionDrugs))
	}
	if s.Count(domain.CollectionTemplates) != len(Templates()) {
		t.Fatalf("templates count = %d", s.Count(domain.CollectionTemplates))
	}
	if _, ok := s.Get(domain.CollectionSettings, domain.SettingsID); !ok {
		t.Fatal("settings singleton missing")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := store.New(schema.Default())
	if err := Run(ctx, s, zerolog.Nop()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(ctx, s, zerolog.Nop()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if s.Count(domain.CollectionDrugs) != len(Drugs()) {
		t.Fatalf("drugs duplicated: %d", s.Count(domain.CollectionDrugs))
	}
	if s.Count(domain.CollectionSettings) != 1 {
		t.Fatalf("settings duplicated: %d", s.Count(domain.CollectionSettings))
	}
}

func TestEnsureSeededSkipsPopulatedCollection(t *testing.T) {
	ctx := context.Background()
	s := store.New(schema.Default())
	if _, err := s.Insert(ctx, domain.CollectionDrugs, domain.Document{
		"id": "user_drug", "name": "Custom compound",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	inserted, err := EnsureSeeded(ctx, s, zerolog.Nop(), domain.CollectionDrugs, Drugs(), 1)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected threshold to skip seeding, inserted %d", inserted)
	}
	if s.Count(domain.CollectionDrugs) != 1 {
		t.Fatalf("count = %d", s.Count(domain.CollectionDrugs))
	}
}

func TestEnsureSeededToleratesDuplicates(t *testing.T) {
	ctx := context.Background()
	s := store.New(schema.Default())
	rows := Drugs()
	if _, err := s.Insert(ctx, domain.CollectionDrugs, rows[0]); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Below threshold 2, so seeding runs and must skip the colliding row.
	inserted, err := EnsureSeeded(ctx, s, zerolog.Nop(), domain.CollectionDrugs, rows, 2)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if inserted != len(rows)-1 {
		t.Fatalf("inserted = %d, want %d", inserted, len(rows)-1)
	}
}

func TestEnsureSettingsPreservesExisting(t *testing.T) {
	ctx := context.Background()
	s := store.New(schema.Default())
	custom := DefaultSettings()
	custom["clinic_name"] = "My Clinic"
	if _, err := s.Insert(ctx, domain.CollectionSettings, custom); err != nil {
		t.Fatalf("insert: %v", err)
	}
	created, err := EnsureSettings(ctx, s, zerolog.Nop())
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if created {
		t.Fatal("expected presence check to skip creation")
	}
	doc, _ := s.Get(domain.CollectionSettings, domain.SettingsID)
	if doc["clinic_name"] != "My Clinic" {
		t.Fatalf("settings overwritten: %v", doc["clinic_name"])
	}
}
