package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subscriptionUC "kursly/internal/application/subscription/usecases"
	"kursly/internal/domain/subscription"
)

const testGroupID int64 = -1009999

type stubSubscriptionRepo struct {
	subscription.SubscriptionRepository

	active     *subscription.Subscription
	resolveErr error
}

func (s *stubSubscriptionRepo) ResolveActive(ctx context.Context, userID int64, now time.Time) (*subscription.Subscription, error) {
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	return s.active, nil
}

func activeSubscription(t *testing.T, userID int64) *subscription.Subscription {
	t.Helper()
	start := time.Now().UTC()
	end := start.AddDate(0, 0, 30)
	sub, err := subscription.NewSubscription(userID, 1, start, &end)
	require.NoError(t, err)
	return sub
}

func newArbitrateUC(repo *stubSubscriptionRepo, gw *fakeGateway) *ArbitrateJoinRequestUseCase {
	resolver := subscriptionUC.NewResolveEntitlementUseCase(repo, testLogger())
	return NewArbitrateJoinRequestUseCase(resolver, gw, testGroupID, testLogger())
}

func TestArbitrateJoin_ApprovesEntitledUser(t *testing.T) {
	gw := newFakeGateway()
	uc := newArbitrateUC(&stubSubscriptionRepo{active: activeSubscription(t, 42)}, gw)

	approved, err := uc.Execute(context.Background(), testGroupID, 42)
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Equal(t, []int64{42}, gw.approved)
	assert.Empty(t, gw.declined)
}

func TestArbitrateJoin_DeclinesWithoutEntitlement(t *testing.T) {
	gw := newFakeGateway()
	uc := newArbitrateUC(&stubSubscriptionRepo{}, gw)

	approved, err := uc.Execute(context.Background(), testGroupID, 42)
	require.NoError(t, err)
	assert.False(t, approved)
	assert.Equal(t, []int64{42}, gw.declined)
	assert.Empty(t, gw.approved)
}

func TestArbitrateJoin_DeclinesOnResolverError(t *testing.T) {
	gw := newFakeGateway()
	uc := newArbitrateUC(&stubSubscriptionRepo{resolveErr: assert.AnError}, gw)

	approved, err := uc.Execute(context.Background(), testGroupID, 42)
	require.NoError(t, err)
	assert.False(t, approved, "resolution failure must not admit anyone")
	assert.Equal(t, []int64{42}, gw.declined)
}

func TestArbitrateJoin_IgnoresForeignChat(t *testing.T) {
	gw := newFakeGateway()
	uc := newArbitrateUC(&stubSubscriptionRepo{active: activeSubscription(t, 42)}, gw)

	approved, err := uc.Execute(context.Background(), -100111, 42)
	require.NoError(t, err)
	assert.False(t, approved)
	assert.Empty(t, gw.approved)
	assert.Empty(t, gw.declined)
}
