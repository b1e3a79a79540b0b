package mappers

import (
	"kursly/internal/domain/video"
	"kursly/internal/infrastructure/persistence/models"
)

// VideoMapper handles conversion between Video domain and model.
type VideoMapper interface {
	ToModel(v *video.Video) *models.VideoModel
	ToEntity(model *models.VideoModel) (*video.Video, error)
	ToEntities(models []*models.VideoModel) ([]*video.Video, error)
}

type VideoMapperImpl struct{}

// NewVideoMapper creates a new VideoMapper.
func NewVideoMapper() VideoMapper {
	return &VideoMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *VideoMapperImpl) ToModel(v *video.Video) *models.VideoModel {
	return &models.VideoModel{
		ID:        v.ID(),
		Title:     v.Title(),
		FileID:    v.FileID(),
		Position:  v.Position(),
		IsActive:  v.IsActive(),
		CreatedAt: v.CreatedAt(),
		UpdatedAt: v.UpdatedAt(),
	}
}

// ToEntity converts GORM model to domain entity
func (m *VideoMapperImpl) ToEntity(model *models.VideoModel) (*video.Video, error) {
	return video.ReconstructVideo(
		model.ID,
		model.Title,
		model.FileID,
		model.Position,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ToEntities converts a slice of GORM models to domain entities
func (m *VideoMapperImpl) ToEntities(videoModels []*models.VideoModel) ([]*video.Video, error) {
	entities := make([]*video.Video, 0, len(videoModels))
	for _, model := range videoModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
