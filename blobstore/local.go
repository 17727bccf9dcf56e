package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps blobs on the local filesystem. It exists for development
// and tests where running against a real bucket is not practical.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, body io.Reader, _ string) (PutResult, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return PutResult{}, err
	}

	f, err := os.Create(path)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	n, err := io.Copy(f, body)
	if err != nil {
		os.Remove(path)
		return PutResult{}, err
	}

	return PutResult{
		URL:  fmt.Sprintf("%s/%s", s.baseURL, key),
		Size: n,
	}, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
}
