package repositories

import (
	"context"
	"errors"

	"github.com/rohits-web03/docdrop/internal/models"
	"gorm.io/gorm"
)

type GormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) Create(ctx context.Context, file *models.FileRecord) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *GormFileRepository) FindByID(ctx context.Context, id uint) (*models.FileRecord, error) {
	var file models.FileRecord
	err := r.db.WithContext(ctx).First(&file, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *GormFileRepository) FindByDownloadToken(ctx context.Context, token string) (*models.FileRecord, error) {
	var file models.FileRecord
	err := r.db.WithContext(ctx).Where("download_token = ?", token).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *GormFileRepository) ListAll(ctx context.Context) ([]models.FileRecord, error) {
	var files []models.FileRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *GormFileRepository) ListByUploader(ctx context.Context, userID uint) ([]models.FileRecord, error) {
	var files []models.FileRecord
	if err := r.db.WithContext(ctx).Where("uploaded_by = ?", userID).Order("id").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
