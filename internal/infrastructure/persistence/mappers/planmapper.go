package mappers

import (
	"kursly/internal/domain/subscription"
	"kursly/internal/infrastructure/persistence/models"
)

// PlanMapper handles conversion between Plan domain and model.
type PlanMapper interface {
	ToModel(plan *subscription.Plan) *models.PlanModel
	ToEntity(model *models.PlanModel) (*subscription.Plan, error)
	ToEntities(models []*models.PlanModel) ([]*subscription.Plan, error)
}

type PlanMapperImpl struct{}

// NewPlanMapper creates a new PlanMapper.
func NewPlanMapper() PlanMapper {
	return &PlanMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *PlanMapperImpl) ToModel(plan *subscription.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:           plan.ID(),
		Name:         plan.Name(),
		DurationDays: plan.DurationDays(),
		Price:        plan.Price(),
		IsActive:     plan.IsActive(),
		CreatedAt:    plan.CreatedAt(),
		UpdatedAt:    plan.UpdatedAt(),
	}
}

// ToEntity converts GORM model to domain entity
func (m *PlanMapperImpl) ToEntity(model *models.PlanModel) (*subscription.Plan, error) {
	return subscription.ReconstructPlan(
		model.ID,
		model.Name,
		model.DurationDays,
		model.Price,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ToEntities converts a slice of GORM models to domain entities
func (m *PlanMapperImpl) ToEntities(planModels []*models.PlanModel) ([]*subscription.Plan, error) {
	entities := make([]*subscription.Plan, 0, len(planModels))
	for _, model := range planModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
