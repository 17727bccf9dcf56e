package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	gallery "github.com/bitmark-inc/image-gallery"
	"github.com/bitmark-inc/image-gallery/cache"
	"github.com/bitmark-inc/image-gallery/log"
)

const imagesCacheKey = "gallery:images"

// ListImages returns all image records, most recent first.
func (s *GalleryServer) ListImages(c *gin.Context) {
	if s.cacheStore != nil {
		data, err := s.cacheStore.GetData(c, imagesCacheKey)
		if err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn("fail to read listing cache", zap.Error(err), log.SourceCache)
		}
	}

	records, err := s.gallery.ListImages(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch images", err)
		return
	}

	if s.cacheStore != nil {
		if data, err := json.Marshal(records); err == nil {
			if err := s.cacheStore.SaveData(c, imagesCacheKey, data); err != nil {
				log.Warn("fail to save listing cache", zap.Error(err), log.SourceCache)
			}
		}
	}

	c.JSON(http.StatusOK, records)
}

// DeleteImage removes a record by id. The blob removal behind it is
// best-effort and never changes the response.
func (s *GalleryServer) DeleteImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Image not found", err)
		return
	}

	if err := s.gallery.DeleteImage(c, id); err != nil {
		if errors.Is(err, gallery.ErrImageNotFound) {
			abortWithError(c, http.StatusNotFound, "Image not found", nil)
			return
		}

		abortWithError(c, http.StatusInternalServerError, "Failed to delete image", err)
		return
	}

	s.invalidateListing(c)

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

// TestDB reports whether the record store is reachable.
func (s *GalleryServer) TestDB(c *gin.Context) {
	count, err := s.gallery.CountImages(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Database test failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Database connection successful",
		"imageCount": count,
	})
}

func (s *GalleryServer) invalidateListing(c *gin.Context) {
	if s.cacheStore == nil {
		return
	}

	if err := s.cacheStore.DeleteData(c, imagesCacheKey); err != nil {
		log.Warn("fail to invalidate listing cache", zap.Error(err), log.SourceCache)
	}
}
