// Package fs implements a filesystem-backed blob store. Each blob is a data
// file plus a small JSON sidecar holding its metadata.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"clinicore/internal/blob/core"
)

var _ core.Store = (*Store)(nil)

const (
	// DefaultRoot is used when no directory is configured.
	DefaultRoot = "blobdata"
	metaSuffix  = ".meta.json"
)

// Store keeps blobs under a root directory, one file per object.
type Store struct {
	root string
}

// New creates (if needed) the root directory and returns a store over it.
func New(root string) (*Store, error) {
	if root == "" {
		root = DefaultRoot
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// pathFor maps a key to a file path, rejecting traversal outside the root.
func (s *Store) pathFor(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty blob key")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *Store) Put(_ context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return core.Info{}, fmt.Errorf("create blob dirs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return core.Info{}, fmt.Errorf("create blob: %w", err)
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return core.Info{}, fmt.Errorf("write blob: %w", err)
	}
	info := core.Info{
		Key:          key,
		Size:         size,
		ContentType:  opts.ContentType,
		LastModified: time.Now().UTC(),
	}
	meta, err := json.Marshal(info)
	if err != nil {
		return core.Info{}, err
	}
	if err := os.WriteFile(path+metaSuffix, meta, 0o640); err != nil {
		return core.Info{}, fmt.Errorf("write blob metadata: %w", err)
	}
	return info, nil
}

func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	info, err := s.readMeta(path, key)
	if err != nil {
		return core.Info{}, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return core.Info{}, nil, fmt.Errorf("open blob: %w", err)
	}
	return info, f, nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	_ = os.Remove(path + metaSuffix)
	return true, nil
}

func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	var out []core.Info
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || strings.HasSuffix(path, metaSuffix) {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := s.readMeta(path, key)
		if err != nil {
			return err
		}
		out = append(out, info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Store) readMeta(path, key string) (core.Info, error) {
	raw, err := os.ReadFile(path + metaSuffix)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return core.Info{}, fmt.Errorf("read blob metadata: %w", err)
		}
		// Data without a sidecar still resolves, from file attributes.
		st, serr := os.Stat(path)
		if serr != nil {
			return core.Info{}, fmt.Errorf("blob %s not found", key)
		}
		return core.Info{Key: key, Size: st.Size(), LastModified: st.ModTime().UTC()}, nil
	}
	var info core.Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return core.Info{}, fmt.Errorf("decode blob metadata: %w", err)
	}
	info.Key = key
	return info, nil
}
