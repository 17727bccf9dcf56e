package main

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/spf13/viper"
)

func (s *GalleryServer) SetupRoute() {
	s.route.Use(sentrygin.New(sentrygin.Options{
		Repanic: true,
	}))

	origins := viper.GetStringSlice("server.cors_origins")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.route.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	s.route.GET("/api/images", s.ListImages)
	s.route.POST("/api/upload", s.UploadImage)
	s.route.DELETE("/api/images/:id", s.DeleteImage)

	s.route.GET("/api/test-db", s.TestDB)
}
