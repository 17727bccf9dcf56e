package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/bitmark-inc/image-gallery/blobstore"
	"github.com/bitmark-inc/image-gallery/log"
)

// UploadRequest carries one file payload plus the optional uploader fields.
type UploadRequest struct {
	Filename    string
	Content     io.Reader
	Size        int64
	ContentType string
	Username    string
	Email       string
}

// Gallery wires the blob store collaborator and the record store together.
// It is the only write path to either.
type Gallery struct {
	blobs blobstore.BlobStore
	store GalleryStore
}

func New(blobs blobstore.BlobStore, store GalleryStore) *Gallery {
	return &Gallery{
		blobs: blobs,
		store: store,
	}
}

// Upload stores the payload in the blob store and inserts a record for it.
// The record is inserted only after the blob write succeeded, so a listing
// never shows a partial upload. If the insert fails the blob is left behind
// as garbage.
func (g *Gallery) Upload(ctx context.Context, req UploadRequest) (ImageRecord, error) {
	if req.Content == nil || req.Filename == "" {
		return ImageRecord{}, ErrNoFileProvided
	}

	key := NewObjectKey(req.Filename)

	result, err := g.blobs.Put(ctx, key, req.Content, req.ContentType)
	if err != nil {
		return ImageRecord{}, &BlobStoreError{Op: "put", Err: err}
	}

	if result.URL == "" {
		return ImageRecord{}, &BlobStoreError{Op: "put", Err: errors.New("blob store returned no url")}
	}

	size := result.Size
	if size <= 0 {
		size = req.Size
	}

	record := ImageRecord{
		URL:      result.URL,
		Name:     filepath.Base(req.Filename),
		Size:     size,
		Username: OptionalString(req.Username),
		Email:    OptionalString(req.Email),
	}

	if err := g.store.CreateImage(ctx, &record); err != nil {
		return ImageRecord{}, &RecordInsertError{Err: err}
	}

	return record, nil
}

// ListImages returns all records, most recent first.
func (g *Gallery) ListImages(ctx context.Context) ([]ImageRecord, error) {
	records, err := g.store.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return records, nil
}

// DeleteImage removes the record row and then attempts to remove its blob.
// The row deletion is authoritative; a blob removal failure is logged and
// swallowed.
func (g *Gallery) DeleteImage(ctx context.Context, id int64) error {
	image, err := g.store.GetImage(ctx, id)
	if err != nil {
		return err
	}

	if err := g.store.DeleteImage(ctx, id); err != nil {
		return err
	}

	if key := ObjectKeyFromURL(image.URL); key != "" {
		if err := g.blobs.Delete(ctx, key); err != nil {
			log.Warn("fail to remove blob for deleted image",
				zap.Error(err),
				zap.Int64("id", id),
				zap.String("key", key),
				log.SourceBlobStore)
		}
	}

	return nil
}

// CountImages reports the number of stored records. It backs the db health
// endpoint.
func (g *Gallery) CountImages(ctx context.Context) (int64, error) {
	count, err := g.store.CountImages(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return count, nil
}
