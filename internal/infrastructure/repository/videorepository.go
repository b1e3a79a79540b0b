package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kursly/internal/domain/video"
	"kursly/internal/infrastructure/persistence/mappers"
	"kursly/internal/infrastructure/persistence/models"
	"kursly/internal/shared/logger"
)

type VideoRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.VideoMapper
	logger logger.Interface
}

func NewVideoRepository(
	db *gorm.DB,
	logger logger.Interface,
) video.VideoRepository {
	return &VideoRepositoryImpl{
		db:     db,
		mapper: mappers.NewVideoMapper(),
		logger: logger,
	}
}

func (r *VideoRepositoryImpl) Create(ctx context.Context, v *video.Video) error {
	model := r.mapper.ToModel(v)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create video in database", "error", err)
		return fmt.Errorf("failed to create video: %w", err)
	}

	if err := v.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set video ID: %w", err)
	}

	r.logger.Infow("video created", "id", model.ID, "title", model.Title)
	return nil
}

func (r *VideoRepositoryImpl) GetByID(ctx context.Context, id uint) (*video.Video, error) {
	var model models.VideoModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get video by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *VideoRepositoryImpl) ListActive(ctx context.Context) ([]*video.Video, error) {
	var videoModels []*models.VideoModel

	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC").
		Find(&videoModels).Error; err != nil {
		r.logger.Errorw("failed to list active videos", "error", err)
		return nil, fmt.Errorf("failed to list active videos: %w", err)
	}

	return r.mapper.ToEntities(videoModels)
}
