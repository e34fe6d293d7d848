// Package core defines the blob storage abstraction used to archive exam
// image originals outside the document store. Semantics mirror a minimal
// subset of S3 so the S3 adapter is nearly 1:1 while filesystem and memory
// adapters emulate them.
package core

import (
	"context"
	"io"
	"time"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local filesystem (default for desktop installs)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests, ephemeral runs)
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string // MIME type, optional
}

// Info describes a stored blob.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Store is the interface blob backends implement. Put replaces any existing
// object at the key: re-saving an exam image overwrites its archived copy.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Get retrieves blob contents and metadata. Missing keys return an error.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// Delete removes a blob. Returns (false, nil) if not found.
	Delete(ctx context.Context, key string) (bool, error)
	// List returns blobs whose key has the provided prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}
