package blobstore

import (
	"context"
	"io"
)

// PutResult reports where an uploaded payload landed and how many bytes were
// written.
type PutResult struct {
	URL  string
	Size int64
}

// BlobStore is the object-storage collaborator. It persists raw file bytes
// under a caller-chosen key and returns a public URL for them.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// countingReader tracks how many bytes an uploader consumed from body.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
