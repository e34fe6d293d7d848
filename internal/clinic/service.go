// Package clinic exposes the typed service surface of the record store:
// patient and clinical record CRUD, reference data, settings and profiles,
// financial aggregation, and the process-wide lifecycle singleton.
package clinic

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clinicore/internal/blob"
	"clinicore/internal/metrics"
	"clinicore/internal/schema"
	"clinicore/internal/store"
	"clinicore/pkg/domain"
)

// Service is the typed facade over the document store. All ids are assigned
// here, never by callers.
type Service struct {
	store   domain.PersistentStore
	blobs   blob.Store
	log     zerolog.Logger
	metrics *metrics.Metrics
	nowFn   func() time.Time
	idFn    func() string
}

// Options configures a Service. Zero-value fields get safe defaults: an
// in-memory store, a no-op logger, no metrics, no image archival.
type Options struct {
	Store   domain.PersistentStore
	Blobs   blob.Store
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// New constructs a Service over the given options.
func New(opts Options) *Service {
	st := opts.Store
	if st == nil {
		st = store.New(schema.Default())
	}
	return &Service{
		store:   st,
		blobs:   opts.Blobs,
		log:     opts.Logger,
		metrics: opts.Metrics,
		nowFn:   func() time.Time { return time.Now().UTC() },
		idFn:    uuid.NewString,
	}
}

// Store exposes the underlying persistent store.
func (s *Service) Store() domain.PersistentStore { return s.store }

// Close releases the underlying store.
func (s *Service) Close() error { return s.store.Close() }

func (s *Service) observe(operation string, start time.Time, err error) {
	elapsed := s.nowFn().Sub(start)
	s.metrics.Observe(operation, err, elapsed)
	if err != nil {
		s.log.Error().Str("operation", operation).Err(err).Msg("operation failed")
	}
}

func (s *Service) now() time.Time { return s.nowFn() }
func (s *Service) newID() string  { return s.idFn() }

// insertTyped encodes a typed record, inserts it, and decodes the committed
// document back so callers see store-maintained fields.
func insertTyped[T any](s *Service, ctx context.Context, collection string, record T) (T, error) {
	var zero T
	doc, err := domain.EncodeDocument(record)
	if err != nil {
		return zero, err
	}
	stored, err := s.store.Insert(ctx, collection, doc)
	if err != nil {
		return zero, err
	}
	s.metrics.SetDocuments(collection, s.store.Count(collection))
	var out T
	if err := domain.DecodeDocument(stored, &out); err != nil {
		return zero, err
	}
	return out, nil
}

func getTyped[T any](s *Service, collection, id string) (T, bool, error) {
	var zero T
	doc, ok := s.store.Get(collection, id)
	if !ok {
		return zero, false, nil
	}
	var out T
	if err := domain.DecodeDocument(doc, &out); err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func patchTyped[T any](s *Service, ctx context.Context, collection, id string, fields domain.Document) (T, error) {
	var zero T
	stored, err := s.store.Patch(ctx, collection, id, fields)
	if err != nil {
		return zero, err
	}
	var out T
	if err := domain.DecodeDocument(stored, &out); err != nil {
		return zero, err
	}
	return out, nil
}

func listTyped[T any](s *Service, collection string, sel domain.Selector, opts domain.FindOptions) ([]T, error) {
	docs := s.store.Find(collection, sel, opts)
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := domain.DecodeDocument(doc, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Service) removeDoc(ctx context.Context, collection, id string) error {
	_, err := s.store.Remove(ctx, collection, id)
	if err == nil {
		s.metrics.SetDocuments(collection, s.store.Count(collection))
	}
	return err
}
