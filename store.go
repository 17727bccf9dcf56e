package gallery

import "context"

// GalleryStore persists image records. Implementations must return
// ErrImageNotFound from GetImage and DeleteImage when no row matches.
type GalleryStore interface {
	CreateImage(ctx context.Context, record *ImageRecord) error
	GetImage(ctx context.Context, id int64) (ImageRecord, error)
	ListImages(ctx context.Context) ([]ImageRecord, error)
	DeleteImage(ctx context.Context, id int64) error
	CountImages(ctx context.Context) (int64, error)
}
