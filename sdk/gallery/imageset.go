package sdk

import (
	"context"
	"sync"

	gallery "github.com/bitmark-inc/image-gallery"
)

// ImageSet mirrors the server's record list for one client session. It is the
// only write path to that list: records enter through Load, AddImages or a
// confirmed DeleteImage, never by ambient mutation.
type ImageSet struct {
	mu     sync.Mutex
	client *Client
	images []gallery.ImageRecord
}

func NewImageSet(client *Client) *ImageSet {
	return &ImageSet{
		client: client,
	}
}

// Load seeds the set from the list service. On failure the set stays empty
// and the error is handed to the caller to surface as a diagnostic.
func (s *ImageSet) Load(ctx context.Context) error {
	records, err := s.client.ListImages(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = records

	return nil
}

// AddImages appends records preserving the order they are given.
func (s *ImageSet) AddImages(records ...gallery.ImageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.images = append(s.images, records...)
}

// DeleteImage removes the record locally only after the server confirmed the
// deletion, so the set never diverges from server state by an optimistic
// removal.
func (s *ImageSet) DeleteImage(ctx context.Context, id int64) error {
	if err := s.client.DeleteImage(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.images[:0]
	for _, record := range s.images {
		if record.ID != id {
			kept = append(kept, record)
		}
	}
	s.images = kept

	return nil
}

// ClearImages empties the set without touching the server.
func (s *ImageSet) ClearImages() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.images = nil
}

// Images returns a copy of the current records.
func (s *ImageSet) Images() []gallery.ImageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]gallery.ImageRecord, len(s.images))
	copy(records, s.images)

	return records
}
