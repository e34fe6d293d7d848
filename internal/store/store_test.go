package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicore/internal/migrate"
	"clinicore/internal/schema"
	"clinicore/pkg/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(schema.Default())
	tick := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})
	return s
}

func patientDoc(id, name string) domain.Document {
	return domain.Document{
		"id":    id,
		"name":  name,
		"scope": "VET",
	}
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Insert(ctx, domain.CollectionPatients, patientDoc("p1", "Rex")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err := s.Insert(ctx, domain.CollectionPatients, patientDoc("p1", "Rex again"))
	var dup domain.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if s.Count(domain.CollectionPatients) != 1 {
		t.Fatalf("expected 1 document, got %d", s.Count(domain.CollectionPatients))
	}
}

func TestInsertValidatesSchema(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Insert(context.Background(), domain.CollectionPatients, domain.Document{"id": "p1"})
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "name" {
		t.Fatalf("expected missing name, got field %q", verr.Field)
	}
}

func TestGetReturnsClone(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Insert(ctx, domain.CollectionPatients, patientDoc("p1", "Rex")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	doc, ok := s.Get(domain.CollectionPatients, "p1")
	if !ok {
		t.Fatal("expected document")
	}
	doc["name"] = "mutated"
	again, _ := s.Get(domain.CollectionPatients, "p1")
	if again["name"] != "Rex" {
		t.Fatalf("committed state mutated through read copy: %v", again["name"])
	}
}

func TestPatchShallowMerge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	doc := patientDoc("p1", "Rex")
	doc["species"] = "canine"
	if _, err := s.Insert(ctx, domain.CollectionPatients, doc); err != nil {
		t.Fatalf("insert: %v", err)
	}
	first, _ := s.Get(domain.CollectionPatients, "p1")
	updated, err := s.Patch(ctx, domain.CollectionPatients, "p1", domain.Document{"name": "Max"})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if updated["name"] != "Max" || updated["species"] != "canine" {
		t.Fatalf("unexpected merge result: %v", updated)
	}
	if updated["updated_at"] == first["updated_at"] {
		t.Fatal("expected updated_at to advance on patch")
	}
}

func TestPatchUnknownIDFails(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Patch(context.Background(), domain.CollectionPatients, "missing", domain.Document{"name": "x"})
	var nf domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestPatchRejectsID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Insert(ctx, domain.CollectionPatients, patientDoc("p1", "Rex")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err := s.Patch(ctx, domain.CollectionPatients, "p1", domain.Document{"id": "p2"})
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for id patch, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Insert(ctx, domain.CollectionPatients, patientDoc("p1", "Rex")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	removed, err := s.Remove(ctx, domain.CollectionPatients, "p1")
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}
	removed, err = s.Remove(ctx, domain.CollectionPatients, "p1")
	if err != nil || removed {
		t.Fatalf("second remove: removed=%v err=%v", removed, err)
	}
}

func TestFindSelectorAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, d := range []domain.Document{
		{"id": "d1", "name": "Amoxicillin", "category": "Antibiotic", "type": "vet"},
		{"id": "d2", "name": "Dipyrone", "category": "Analgesic", "type": "vet"},
		{"id": "d3", "name": "amoxicillin suspension", "category": "Antibiotic", "type": "human"},
	} {
		if _, err := s.Insert(ctx, domain.CollectionDrugs, d); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got := s.Find(domain.CollectionDrugs, domain.Selector{"name": {Contains: "AMOX"}}, domain.FindOptions{})
	if len(got) != 2 {
		t.Fatalf("expected 2 case-insensitive matches, got %d", len(got))
	}
	if domain.DocumentID(got[0]) != "d1" || domain.DocumentID(got[1]) != "d3" {
		t.Fatalf("expected insertion order d1,d3; got %s,%s", domain.DocumentID(got[0]), domain.DocumentID(got[1]))
	}

	got = s.Find(domain.CollectionDrugs, domain.Selector{"type": {Eq: "vet"}}, domain.FindOptions{SortField: "name", SortDesc: true})
	if len(got) != 2 || got[0]["name"] != "Dipyrone" {
		t.Fatalf("unexpected sorted result: %v", got)
	}
}

func TestFindZeroConditionMatchesEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, d := range []domain.Document{
		{"id": "d1", "name": "Amoxicillin", "type": "vet"},
		{"id": "d2", "name": "Dipyrone", "type": "human"},
	} {
		if _, err := s.Insert(ctx, domain.CollectionDrugs, d); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	// An empty substring is contained in every name; a zero condition must
	// not collapse into an equality test against nil.
	got := s.Find(domain.CollectionDrugs, domain.Selector{"name": {Contains: ""}}, domain.FindOptions{})
	if len(got) != 2 {
		t.Fatalf("zero condition matched %d of 2", len(got))
	}
}

func TestFindLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"p1", "p2", "p3"} {
		if _, err := s.Insert(ctx, domain.CollectionPatients, patientDoc(id, "N "+id)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	got := s.Find(domain.CollectionPatients, nil, domain.FindOptions{Limit: 2})
	if len(got) != 2 {
		t.Fatalf("expected limit 2, got %d", len(got))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Insert(ctx, domain.CollectionPatients, patientDoc("p1", "Rex")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	snap := s.Export()
	if snap[domain.CollectionPatients].Version != schema.PatientsVersion {
		t.Fatalf("export version = %d", snap[domain.CollectionPatients].Version)
	}

	restored := New(schema.Default())
	if err := restored.Import(snap, migrate.Default()); err != nil {
		t.Fatalf("import: %v", err)
	}
	doc, ok := restored.Get(domain.CollectionPatients, "p1")
	if !ok || doc["name"] != "Rex" {
		t.Fatalf("round trip lost document: %v", doc)
	}
}

func TestImportMigratesOldVersions(t *testing.T) {
	snap := Snapshot{
		domain.CollectionPatients: {
			Version: 1,
			Docs: []domain.Document{
				{"id": "p1", "name": "Joana", "practice": "human"},
			},
		},
	}
	s := New(schema.Default())
	if err := s.Import(snap, migrate.Default()); err != nil {
		t.Fatalf("import: %v", err)
	}
	doc, _ := s.Get(domain.CollectionPatients, "p1")
	if doc["scope"] != "HUMAN" {
		t.Fatalf("expected scope inferred as HUMAN, got %v", doc["scope"])
	}
}

func TestImportRejectsNewerSnapshot(t *testing.T) {
	snap := Snapshot{
		domain.CollectionPatients: {
			Version: schema.PatientsVersion + 1,
			Docs:    []domain.Document{patientDoc("p1", "Rex")},
		},
	}
	s := New(schema.Default())
	err := s.Import(snap, migrate.Default())
	var conflict domain.SchemaConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SchemaConflictError, got %v", err)
	}
	if s.Count(domain.CollectionPatients) != 0 {
		t.Fatal("failed import must leave store untouched")
	}
}
