package storage

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// FSStore keeps scans on the local disk. Good enough for a single-node
// deployment; swap for an object store behind the same interface later.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	key, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(s.base, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FSStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.base, filepath.FromSlash(key)))
}

func (s *FSStore) URL(key string) (string, error) {
	key, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.Join(s.base, filepath.FromSlash(key))}
	return u.String(), nil
}
