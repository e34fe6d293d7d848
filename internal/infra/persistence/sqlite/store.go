// Package sqlite persists the document store to a single SQLite table as
// JSON blobs. The full state of a collection is rewritten after every
// successful mutation, which keeps the write path trivial at the record
// volumes a single clinic produces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"clinicore/internal/migrate"
	"clinicore/internal/schema"
	"clinicore/internal/store"
	"clinicore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

// DefaultPath is used when no database path is configured.
const DefaultPath = "clinicore.db"

// Store wraps the in-memory store and snapshots it to SQLite after every
// successful mutation. Loading runs pending schema migrations and writes the
// upgraded state back before the store is handed out.
type Store struct {
	*store.Store
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the database at path, loads all buckets and
// migrates any documents written under older schema versions.
func Open(ctx context.Context, path string, registry *schema.Registry, engine *migrate.Engine) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	s := &Store{Store: store.New(registry), db: db}
	if err := s.load(ctx, engine); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context, engine *migrate.Engine) error {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, version, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snap := store.Snapshot{}
	migrated := false
	for rows.Next() {
		var (
			bucket  string
			version int
			payload []byte
		)
		if err := rows.Scan(&bucket, &version, &payload); err != nil {
			return fmt.Errorf("scan state: %w", err)
		}
		var docs []domain.Document
		if err := json.Unmarshal(payload, &docs); err != nil {
			return fmt.Errorf("decode %s: %w", bucket, err)
		}
		if sc, ok := s.Registry().Describe(bucket); ok && version != sc.Version {
			migrated = true
		}
		snap[bucket] = store.BucketSnapshot{Version: version, Docs: docs}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if len(snap) == 0 {
		return nil
	}
	if err := s.Store.Import(snap, engine); err != nil {
		return err
	}
	if migrated {
		return s.persist(ctx)
	}
	return nil
}

func (s *Store) persist(ctx context.Context) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.Export()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range s.Registry().Collections() {
		bs := snap[bucket]
		payload, err := json.Marshal(bs.Docs)
		if err != nil {
			retErr = fmt.Errorf("encode %s: %w", bucket, err)
			return retErr
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,version,payload) VALUES(?,?,?)
			ON CONFLICT(bucket) DO UPDATE SET version=excluded.version, payload=excluded.payload`,
			bucket, bs.Version, payload); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", bucket, err)
			return retErr
		}
	}
	return tx.Commit()
}

func (s *Store) Insert(ctx context.Context, collection string, doc domain.Document) (domain.Document, error) {
	out, err := s.Store.Insert(ctx, collection, doc)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Patch(ctx context.Context, collection, id string, fields domain.Document) (domain.Document, error) {
	out, err := s.Store.Patch(ctx, collection, id, fields)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Remove(ctx context.Context, collection, id string) (bool, error) {
	removed, err := s.Store.Remove(ctx, collection, id)
	if err != nil || !removed {
		return removed, err
	}
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
