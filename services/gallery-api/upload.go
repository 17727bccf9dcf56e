package main

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	gallery "github.com/bitmark-inc/image-gallery"
)

// UploadImage handles a single multipart file upload. The client submits one
// request per staged file so a failure here never aborts sibling uploads.
func (s *GalleryServer) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "No file uploaded", err)
		return
	}

	contentType := sniffContentType(fileHeader)
	if contentType != "" && !gallery.IsSupportedImageType(contentType) {
		abortWithError(c, http.StatusBadRequest, "Unsupported file type", fmt.Errorf("detected content type %q", contentType))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not open uploaded file", err)
		return
	}
	defer src.Close()

	record, err := s.gallery.Upload(c, gallery.UploadRequest{
		Filename:    fileHeader.Filename,
		Content:     src,
		Size:        fileHeader.Size,
		ContentType: contentType,
		Username:    c.PostForm("username"),
		Email:       c.PostForm("email"),
	})
	if err != nil {
		if errors.Is(err, gallery.ErrNoFileProvided) {
			abortWithError(c, http.StatusBadRequest, "No file uploaded", err)
			return
		}

		abortWithError(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	s.invalidateListing(c)

	c.JSON(http.StatusOK, record)
}

// sniffContentType re-checks the payload type on the server instead of
// trusting the multipart header. Detection failures fall back to the header.
func sniffContentType(fileHeader *multipart.FileHeader) string {
	f, err := fileHeader.Open()
	if err != nil {
		return fileHeader.Header.Get("Content-Type")
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return fileHeader.Header.Get("Content-Type")
	}

	return mtype.String()
}
