package storage

import (
	"context"
	"errors"

	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBImageStore keeps images as blobs in the images table.
type DBImageStore struct {
	db *gorm.DB
}

func NewDBImageStore(db *gorm.DB) *DBImageStore {
	return &DBImageStore{db: db}
}

func (s *DBImageStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	image := models.Image{StorageKey: key, ContentType: contentType, Data: data}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"content_type", "data"}),
		}).
		Create(&image).Error
}

func (s *DBImageStore) Get(ctx context.Context, key string) ([]byte, string, error) {
	var image models.Image
	if err := s.db.WithContext(ctx).Where("storage_key = ?", key).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrImageNotFound
		}
		return nil, "", err
	}
	return image.Data, image.ContentType, nil
}

func (s *DBImageStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&models.Image{}).Error
}
