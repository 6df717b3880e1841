package db

import (
	"context"
	"errors"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlobRepository stores blobs as rows keyed by object key.
type BlobRepository struct {
	db *gorm.DB
}

func NewBlobRepository(db *gorm.DB) *BlobRepository {
	return &BlobRepository{db: db}
}

func (r *BlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var model blobModel
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return model.Body, nil
}

func (r *BlobRepository) Put(ctx context.Context, key string, body []byte, contentType string) error {
	model := blobModel{Key: key, Body: body, ContentType: contentType, Size: len(body)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "content_type", "size", "updated_at"}),
	}).Create(&model).Error
}
