package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kursly/internal/infrastructure/persistence/models"
)

func TestSubscriptionMapper_RoundTrip(t *testing.T) {
	mapper := NewSubscriptionMapper()
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	model := &models.SubscriptionModel{
		ID:        3,
		UserID:    100,
		PlanID:    1,
		StartDate: end.AddDate(0, 0, -30),
		EndDate:   &end,
		IsActive:  true,
		CreatedAt: end.AddDate(0, 0, -30),
		UpdatedAt: end.AddDate(0, 0, -30),
	}

	entity, err := mapper.ToEntity(model)
	require.NoError(t, err)

	back := mapper.ToModel(entity)
	assert.Equal(t, model, back)
}

func TestSubscriptionMapper_LifetimeKeepsNilEndDate(t *testing.T) {
	mapper := NewSubscriptionMapper()

	model := &models.SubscriptionModel{
		ID:        4,
		UserID:    100,
		PlanID:    2,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   nil,
		IsActive:  true,
	}

	entity, err := mapper.ToEntity(model)
	require.NoError(t, err)
	assert.True(t, entity.IsLifetime())
	assert.Nil(t, mapper.ToModel(entity).EndDate)
}
