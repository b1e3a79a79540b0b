package mappers

import (
	"kursly/internal/domain/user"
	"kursly/internal/infrastructure/persistence/models"
)

// UserMapper handles conversion between User domain and model.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToEntity(model *models.UserModel) (*user.User, error)
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

// NewUserMapper creates a new UserMapper.
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:        u.ID(),
		Username:  u.Username(),
		FullName:  u.FullName(),
		CreatedAt: u.CreatedAt(),
	}
}

// ToEntity converts GORM model to domain entity
func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.FullName,
		model.CreatedAt,
	)
}

// ToEntities converts a slice of GORM models to domain entities
func (m *UserMapperImpl) ToEntities(userModels []*models.UserModel) ([]*user.User, error) {
	entities := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
