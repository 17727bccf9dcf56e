package cache

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/bitmark-inc/image-gallery/log"
)

// ErrCacheMiss is returned when no data is stored under a cache key.
var ErrCacheMiss = errors.New("cache miss")

// CacheStore keeps serialized API responses keyed by name. Failures here are
// never user-visible; callers fall back to the record store.
type CacheStore interface {
	SaveData(ctx context.Context, cacheKey string, value []byte) error
	GetData(ctx context.Context, cacheKey string) ([]byte, error)
	DeleteData(ctx context.Context, cacheKey string) error
}

type MongoDBCacheStore struct {
	dbName                 string
	mongoClient            *mongo.Client
	galleryCacheCollection *mongo.Collection
}

const (
	galleryCacheCollectionName = "gallery_caches"
)

func NewMongoDBCacheStore(ctx context.Context, mongodbURI, dbName string) (*MongoDBCacheStore, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongodbURI))
	if err != nil {
		return nil, err
	}

	db := mongoClient.Database(dbName)
	galleryCacheCollection := db.Collection(galleryCacheCollectionName)

	return &MongoDBCacheStore{
		dbName:                 dbName,
		mongoClient:            mongoClient,
		galleryCacheCollection: galleryCacheCollection,
	}, nil
}

// SaveData insert or update the the value for the cacheKey
func (s *MongoDBCacheStore) SaveData(ctx context.Context, cacheKey string, value []byte) error {
	r, err := s.galleryCacheCollection.UpdateOne(ctx,
		bson.M{"key": cacheKey},
		bson.M{"$set": bson.M{"key": cacheKey, "data": primitive.Binary{Data: value}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	if r.MatchedCount == 0 && r.UpsertedCount == 0 {
		log.Warn("cache is not added or updated", zap.String("key", cacheKey), log.SourceCache)
	}

	return nil
}

// GetData get the data by cacheKey
func (s *MongoDBCacheStore) GetData(ctx context.Context, cacheKey string) ([]byte, error) {
	var info struct {
		Key  string           `bson:"key"`
		Data primitive.Binary `bson:"data"`
	}

	r := s.galleryCacheCollection.FindOne(ctx,
		bson.M{
			"key": cacheKey,
		},
	)
	if err := r.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	if err := r.Decode(&info); err != nil {
		return nil, err
	}

	return info.Data.Data, nil
}

// DeleteData drops the cache entry for the cacheKey, if any.
func (s *MongoDBCacheStore) DeleteData(ctx context.Context, cacheKey string) error {
	_, err := s.galleryCacheCollection.DeleteOne(ctx, bson.M{"key": cacheKey})
	return err
}
