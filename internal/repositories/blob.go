package repositories

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// BlobStore holds uploaded file content keyed by an opaque string. Keys are
// generated server-side (download token + filename) and never derived from
// client paths.
type BlobStore interface {
	Save(ctx context.Context, key string, content io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// DiskBlobStore keeps blobs as files in a single flat directory.
type DiskBlobStore struct {
	dir string
}

func NewDiskBlobStore(dir string) (*DiskBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskBlobStore{dir: dir}, nil
}

func (s *DiskBlobStore) path(key string) string {
	// Keys are server-generated, but Base keeps a malformed key from
	// escaping the directory.
	return filepath.Join(s.dir, filepath.Base(key))
}

func (s *DiskBlobStore) Save(_ context.Context, key string, content io.Reader) error {
	dst, err := os.Create(s.path(key))
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, content); err != nil {
		return err
	}
	return dst.Close()
}

func (s *DiskBlobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *DiskBlobStore) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
