package main

import (
	"github.com/gin-gonic/gin"

	gallery "github.com/bitmark-inc/image-gallery"
	"github.com/bitmark-inc/image-gallery/cache"
)

type GalleryServer struct {
	route *gin.Engine

	gallery    *gallery.Gallery
	cacheStore cache.CacheStore
}

func NewGalleryServer(g *gallery.Gallery, cacheStore cache.CacheStore) *GalleryServer {
	r := gin.New()

	return &GalleryServer{
		route:      r,
		gallery:    g,
		cacheStore: cacheStore,
	}
}

func (s *GalleryServer) Run(port string) error {
	return s.route.Run(port)
}
