// Package seed populates reference collections on store initialization.
// Seeding is additive: rows already present (or user-added) are never touched.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"clinicore/pkg/domain"
)

// EnsureSeeded inserts rows when the collection's population is below
// minCount. Individual duplicate-id conflicts are skipped rather than
// aborting the batch, so shipped seed sets can grow across releases without
// wiping rows that already exist. Returns the number of rows inserted.
func EnsureSeeded(ctx context.Context, store domain.PersistentStore, log zerolog.Logger, collection string, rows []domain.Document, minCount int) (int, error) {
	if store.Count(collection) >= minCount {
		return 0, nil
	}
	inserted := 0
	for _, row := range rows {
		if _, err := store.Insert(ctx, collection, row); err != nil {
			var dup domain.DuplicateKeyError
			if errors.As(err, &dup) {
				log.Debug().Str("collection", collection).Str("id", dup.ID).Msg("seed row already present")
				continue
			}
			return inserted, err
		}
		inserted++
	}
	log.Info().Str("collection", collection).Int("inserted", inserted).Msg("collection seeded")
	return inserted, nil
}

// EnsureSettings creates the settings singleton when absent. Unlike the
// count-based collections, settings uses a presence check on its fixed id.
func EnsureSettings(ctx context.Context, store domain.PersistentStore, log zerolog.Logger) (bool, error) {
	if _, ok := store.Get(domain.CollectionSettings, domain.SettingsID); ok {
		return false, nil
	}
	if _, err := store.Insert(ctx, domain.CollectionSettings, DefaultSettings()); err != nil {
		var dup domain.DuplicateKeyError
		if errors.As(err, &dup) {
			return false, nil
		}
		return false, err
	}
	log.Info().Msg("settings singleton created")
	return true, nil
}

// Run bootstraps every reference collection.
func Run(ctx context.Context, store domain.PersistentStore, log zerolog.Logger) error {
	if _, err := EnsureSeeded(ctx, store, log, domain.CollectionDrugs, Drugs(), 1); err != nil {
		return err
	}
	if _, err := EnsureSeeded(ctx, store, log, domain.CollectionTemplates, Templates(), 1); err != nil {
		return err
	}
	_, err := EnsureSettings(ctx, store, log)
	return err
}
