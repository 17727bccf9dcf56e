package gallery

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IsSupportedImageType validates if an image is supported
func IsSupportedImageType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// NewObjectKey builds a collision-resistant blob key for an uploaded file.
// The millisecond prefix keeps keys roughly time-ordered and the uuid
// fragment disambiguates same-named files uploaded within one millisecond.
func NewObjectKey(filename string) string {
	name := filepath.Base(filename)
	fragment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), fragment, name)
}

// ObjectKeyFromURL derives the blob key from a stored public URL. It returns
// an empty string if the URL is not parsable.
func ObjectKeyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

// OptionalString maps an empty form value to NULL.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
