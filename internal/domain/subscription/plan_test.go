package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewPlan_ValidInput(t *testing.T) {
	plan, err := NewPlan("1 Month", intPtr(30), 5000000)

	require.NoError(t, err)
	assert.Equal(t, "1 Month", plan.Name())
	require.NotNil(t, plan.DurationDays())
	assert.Equal(t, 30, *plan.DurationDays())
	assert.Equal(t, int64(5000000), plan.Price())
	assert.True(t, plan.IsActive())
	assert.False(t, plan.IsLifetime())
}

func TestNewPlan_Lifetime(t *testing.T) {
	plan, err := NewPlan("Lifetime", nil, 20000000)

	require.NoError(t, err)
	assert.True(t, plan.IsLifetime())
	assert.Nil(t, plan.DurationDays())
}

func TestNewPlan_Invalid(t *testing.T) {
	_, err := NewPlan("", intPtr(30), 100)
	assert.Error(t, err, "empty name")

	_, err = NewPlan("Bad", intPtr(0), 100)
	assert.Error(t, err, "zero duration")

	_, err = NewPlan("Bad", intPtr(30), 0)
	assert.Error(t, err, "zero price")

	_, err = NewPlan("Bad", intPtr(30), -5)
	assert.Error(t, err, "negative price")
}

func TestPlan_EndDateFrom(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	plan, err := NewPlan("1 Month", intPtr(30), 5000000)
	require.NoError(t, err)

	end := plan.EndDateFrom(start)
	require.NotNil(t, end)
	assert.Equal(t, start.AddDate(0, 0, 30), *end)
}

func TestPlan_EndDateFrom_Lifetime(t *testing.T) {
	plan, err := NewPlan("Lifetime", nil, 20000000)
	require.NoError(t, err)

	assert.Nil(t, plan.EndDateFrom(time.Now().UTC()))
}

func TestPlan_DeactivateActivate(t *testing.T) {
	plan, err := NewPlan("1 Month", intPtr(30), 5000000)
	require.NoError(t, err)

	plan.Deactivate()
	assert.False(t, plan.IsActive())

	plan.Activate()
	assert.True(t, plan.IsActive())
}
