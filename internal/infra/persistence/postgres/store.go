// Package postgres provides a Postgres-backed persistent store that mirrors
// the in-memory semantics. State is snapshotted per collection into a single
// table with a JSONB payload after every successful mutation.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"clinicore/internal/migrate"
	"clinicore/internal/schema"
	"clinicore/internal/store"
	"clinicore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

const (
	driverName = "pgx"
	// DefaultDSN is used when no connection string is configured.
	DefaultDSN = "postgres://localhost/clinicore?sslmode=disable"
)

// Store persists state to Postgres while reusing the in-memory store for all
// query semantics.
type Store struct {
	*store.Store
	db *sql.DB
	mu sync.Mutex
}

// Open connects using the provided DSN (falls back to DefaultDSN), ensures
// the state table exists and hydrates the in-memory store, running schema
// migrations for buckets written under older versions.
func Open(ctx context.Context, dsn string, registry *schema.Registry, engine *migrate.Engine) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		payload JSONB NOT NULL
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
		if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,version,payload) VALUES($1,$2,$3)
			ON CONFLICT (bucket) DO UPDATE SET version = EXCLUDED.version, payload = EXCLUDED.payload`,
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
