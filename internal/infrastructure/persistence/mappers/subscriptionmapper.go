package mappers

import (
	"kursly/internal/domain/subscription"
	"kursly/internal/infrastructure/persistence/models"
)

// SubscriptionMapper handles conversion between Subscription domain and model.
type SubscriptionMapper interface {
	ToModel(sub *subscription.Subscription) *models.SubscriptionModel
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

// NewSubscriptionMapper creates a new SubscriptionMapper.
func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *SubscriptionMapperImpl) ToModel(sub *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:        sub.ID(),
		UserID:    sub.UserID(),
		PlanID:    sub.PlanID(),
		StartDate: sub.StartDate(),
		EndDate:   sub.EndDate(),
		IsActive:  sub.IsActive(),
		CreatedAt: sub.CreatedAt(),
		UpdatedAt: sub.UpdatedAt(),
	}
}

// ToEntity converts GORM model to domain entity
func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	return subscription.ReconstructSubscription(
		model.ID,
		model.UserID,
		model.PlanID,
		model.StartDate,
		model.EndDate,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ToEntities converts a slice of GORM models to domain entities
func (m *SubscriptionMapperImpl) ToEntities(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subModels))
	for _, model := range subModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
