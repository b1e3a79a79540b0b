package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kursly/internal/domain/subscription"
)

func expiredSubscription(t *testing.T, userID int64) *subscription.Subscription {
	t.Helper()
	start := time.Now().UTC().AddDate(0, 0, -31)
	end := start.AddDate(0, 0, 30)
	sub, err := subscription.NewSubscription(userID, 1, start, &end)
	require.NoError(t, err)
	return sub
}

func TestSweepExpired_ReturnsDeactivatedRows(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		expired: []*subscription.Subscription{
			expiredSubscription(t, 1),
			expiredSubscription(t, 2),
		},
	}
	uc := NewSweepExpiredUseCase(repo, testLogger())

	rows, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSweepExpired_SecondRunIsEmpty(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		expired: []*subscription.Subscription{expiredSubscription(t, 1)},
	}
	uc := NewSweepExpiredUseCase(repo, testLogger())

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestSweepExpired_RepositoryErrorPropagates(t *testing.T) {
	repo := &fakeSubscriptionRepo{sweepErr: errors.New("db down")}
	uc := NewSweepExpiredUseCase(repo, testLogger())

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}

func TestResolveEntitlement_NoneIsNilNotError(t *testing.T) {
	uc := NewResolveEntitlementUseCase(&fakeSubscriptionRepo{}, testLogger())

	sub, err := uc.Execute(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestResolveEntitlement_ReturnsActiveRow(t *testing.T) {
	start := time.Now().UTC()
	end := start.AddDate(0, 0, 30)
	active, err := subscription.NewSubscription(7, 1, start, &end)
	require.NoError(t, err)

	uc := NewResolveEntitlementUseCase(&fakeSubscriptionRepo{active: active}, testLogger())

	sub, err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, int64(7), sub.UserID())
}
