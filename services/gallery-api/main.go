package main

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	config "github.com/bitmark-inc/config-loader"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	gallery "github.com/bitmark-inc/image-gallery"
	"github.com/bitmark-inc/image-gallery/blobstore"
	"github.com/bitmark-inc/image-gallery/cache"
	"github.com/bitmark-inc/image-gallery/log"
	"github.com/bitmark-inc/image-gallery/store"
)

func main() {
	ctx := context.Background()

	config.LoadConfig("IMAGE_GALLERY")

	environment := viper.GetString("environment")

	if err := log.Initialize(viper.GetString("log.level"), viper.GetBool("debug")); err != nil {
		panic(err)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         viper.GetString("sentry.dsn"),
		Environment: environment,
	}); err != nil {
		log.Panic("Sentry initialization failed", zap.Error(err))
	}

	imageStore, err := store.New(viper.GetString("store.dsn"))
	if err != nil {
		log.Panic("fail to initiate image store", zap.Error(err))
	}

	if err := imageStore.AutoMigrate(); err != nil {
		log.Panic("fail to migrate images table", zap.Error(err))
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(viper.GetString("blob.region")),
	})
	if err != nil {
		log.Panic("fail to initiate aws session", zap.Error(err))
	}

	blobs := blobstore.NewS3Store(sess, viper.GetString("blob.bucket"), viper.GetString("blob.public_url"))

	var cacheStore cache.CacheStore
	if viper.GetBool("cache.enabled") {
		cacheStore, err = cache.NewMongoDBCacheStore(ctx, viper.GetString("cache.db_uri"), viper.GetString("cache.db_name"))
		if err != nil {
			log.Panic("fail to initiate cache store", zap.Error(err))
		}
	}

	s := NewGalleryServer(gallery.New(blobs, imageStore), cacheStore)
	s.SetupRoute()
	if err := s.Run(viper.GetString("server.port")); err != nil {
		log.Panic("server interrupted", zap.Error(err))
	}
}
