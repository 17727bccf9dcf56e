package store

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gallery "github.com/bitmark-inc/image-gallery"
)

// ImageStore is the GORM-backed record store for the images table.
type ImageStore struct {
	db *gorm.DB
}

// New opens a Postgres-backed image store.
func New(dsn string) (*ImageStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.LogLevel(viper.GetInt("store.log_level"))),
	})
	if err != nil {
		return nil, err
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(50)
	// SetConnMaxLifetime sets the maximum amount of time a connection may be reused.
	sqldb.SetConnMaxLifetime(time.Hour)

	return &ImageStore{db: db}, nil
}

// NewWithDB wraps an already-opened GORM connection. Tests use it to swap in
// an embedded database.
func NewWithDB(db *gorm.DB) *ImageStore {
	return &ImageStore{db: db}
}

func (s *ImageStore) AutoMigrate() error {
	return s.db.AutoMigrate(&gallery.ImageRecord{})
}

func (s *ImageStore) CreateImage(ctx context.Context, record *gallery.ImageRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *ImageStore) GetImage(ctx context.Context, id int64) (gallery.ImageRecord, error) {
	var image gallery.ImageRecord

	err := s.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gallery.ImageRecord{}, gallery.ErrImageNotFound
	}

	return image, err
}

// ListImages returns every record ordered by upload time, most recent first.
// Rows sharing a timestamp keep their insertion order.
func (s *ImageStore) ListImages(ctx context.Context) ([]gallery.ImageRecord, error) {
	records := []gallery.ImageRecord{}

	err := s.db.WithContext(ctx).
		Order("uploaded_at DESC, id ASC").
		Find(&records).Error

	return records, err
}

func (s *ImageStore) DeleteImage(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Delete(&gallery.ImageRecord{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gallery.ErrImageNotFound
	}

	return nil
}

func (s *ImageStore) CountImages(ctx context.Context) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&gallery.ImageRecord{}).Count(&count).Error

	return count, err
}
