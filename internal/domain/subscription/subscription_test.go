package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newMonthlySubscription(t *testing.T) *Subscription {
	t.Helper()
	start := time.Now().UTC()
	end := start.AddDate(0, 0, 30)
	sub, err := NewSubscription(100, 1, start, &end)
	require.NoError(t, err)
	require.NotNil(t, sub)
	return sub
}

func newLifetimeSubscription(t *testing.T) *Subscription {
	t.Helper()
	sub, err := NewSubscription(100, 2, time.Now().UTC(), nil)
	require.NoError(t, err)
	return sub
}

func TestNewSubscription_ValidInput(t *testing.T) {
	start := time.Now().UTC()
	end := start.AddDate(0, 0, 30)

	sub, err := NewSubscription(100, 1, start, &end)

	require.NoError(t, err)
	require.NotNil(t, sub)

	assert.Equal(t, int64(100), sub.UserID())
	assert.Equal(t, uint(1), sub.PlanID())
	assert.Equal(t, start, sub.StartDate())
	require.NotNil(t, sub.EndDate())
	assert.Equal(t, end, *sub.EndDate())
	assert.True(t, sub.IsActive(), "new subscriptions start active")
	assert.False(t, sub.IsLifetime())
}

func TestNewSubscription_LifetimeHasNoEndDate(t *testing.T) {
	sub := newLifetimeSubscription(t)

	assert.Nil(t, sub.EndDate())
	assert.True(t, sub.IsLifetime())
}

func TestNewSubscription_RejectsZeroUserID(t *testing.T) {
	_, err := NewSubscription(0, 1, time.Now().UTC(), nil)
	assert.Error(t, err)
}

func TestNewSubscription_RejectsZeroPlanID(t *testing.T) {
	_, err := NewSubscription(100, 0, time.Now().UTC(), nil)
	assert.Error(t, err)
}

func TestNewSubscription_RejectsEndBeforeStart(t *testing.T) {
	start := time.Now().UTC()
	end := start.AddDate(0, 0, -1)

	_, err := NewSubscription(100, 1, start, &end)
	assert.Error(t, err)
}

func TestSubscription_IsExpiredAt(t *testing.T) {
	start := time.Now().UTC()
	end := start.AddDate(0, 0, 30)
	sub, err := NewSubscription(100, 1, start, &end)
	require.NoError(t, err)

	assert.False(t, sub.IsExpiredAt(start.AddDate(0, 0, 29)))
	assert.True(t, sub.IsExpiredAt(start.AddDate(0, 0, 31)))
}

func TestSubscription_LifetimeNeverExpires(t *testing.T) {
	sub := newLifetimeSubscription(t)

	farFuture := time.Now().UTC().AddDate(100, 0, 0)
	assert.False(t, sub.IsExpiredAt(farFuture))
	assert.True(t, sub.IsCurrentAt(farFuture))
}

func TestSubscription_IsCurrentAt(t *testing.T) {
	sub := newMonthlySubscription(t)
	now := time.Now().UTC()

	assert.True(t, sub.IsCurrentAt(now))

	sub.Deactivate()
	assert.False(t, sub.IsCurrentAt(now), "deactivated rows grant no access")
}

func TestSubscription_DeactivateIsIdempotent(t *testing.T) {
	sub := newMonthlySubscription(t)

	sub.Deactivate()
	firstUpdate := sub.UpdatedAt()
	sub.Deactivate()

	assert.False(t, sub.IsActive())
	assert.Equal(t, firstUpdate, sub.UpdatedAt())
}

func TestSubscription_SetID(t *testing.T) {
	sub := newMonthlySubscription(t)

	require.NoError(t, sub.SetID(42))
	assert.Equal(t, uint(42), sub.ID())

	assert.Error(t, sub.SetID(43), "ID can only be set once")
}

func TestReconstructSubscription(t *testing.T) {
	start := time.Now().UTC().AddDate(0, 0, -40)
	end := start.AddDate(0, 0, 30)

	sub, err := ReconstructSubscription(7, 100, 1, start, &end, true, start, start)

	require.NoError(t, err)
	assert.Equal(t, uint(7), sub.ID())
	assert.True(t, sub.IsActive(), "stored flag survives reconstruction even when expired")
	assert.True(t, sub.IsExpiredAt(time.Now().UTC()))
	assert.False(t, sub.IsCurrentAt(time.Now().UTC()))
}

func TestReconstructSubscription_RejectsZeroID(t *testing.T) {
	_, err := ReconstructSubscription(0, 100, 1, time.Now().UTC(), nil, true, time.Now().UTC(), time.Now().UTC())
	assert.Error(t, err)
}
