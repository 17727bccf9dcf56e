package log

import "go.uber.org/zap"

var (
	SourceAPI       = zap.String("source", "api")
	SourcePG        = zap.String("source", "pq")
	SourceBlobStore = zap.String("source", "blobStore")
	SourceCache     = zap.String("source", "cache")
	SourceSDK       = zap.String("source", "sdk")
)
