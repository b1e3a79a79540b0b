package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kursly/internal/domain/payment"
	"kursly/internal/domain/subscription"
)

func TestActivateSubscription_Success(t *testing.T) {
	plan := mustPlan(t, "Monthly", intPtr(30), 5000000)
	planRepo := newFakePlanRepo()
	require.NoError(t, planRepo.Create(context.Background(), plan))

	store := newFakeActivationStore()
	uc := NewActivateSubscriptionUseCase(store, planRepo, testLogger())

	sub, err := uc.Execute(context.Background(), ActivateSubscriptionInput{
		UserID:   111,
		PlanID:   plan.ID(),
		Amount:   5000000,
		Currency: "UZS",
		Provider: "telegram",
		ChargeID: "charge-1",
	})
	require.NoError(t, err)
	require.NotNil(t, sub)

	assert.Equal(t, int64(111), sub.UserID())
	assert.Equal(t, plan.ID(), sub.PlanID())
	require.NotNil(t, sub.EndDate())
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 30), *sub.EndDate(), 5*time.Second)
	assert.Len(t, store.created, 1)
	assert.True(t, store.hasCharge("charge-1"))
}

func TestActivateSubscription_LifetimePlanHasNoEndDate(t *testing.T) {
	plan := mustPlan(t, "Lifetime", nil, 20000000)
	planRepo := newFakePlanRepo()
	require.NoError(t, planRepo.Create(context.Background(), plan))

	uc := NewActivateSubscriptionUseCase(newFakeActivationStore(), planRepo, testLogger())

	sub, err := uc.Execute(context.Background(), ActivateSubscriptionInput{
		UserID:   222,
		PlanID:   plan.ID(),
		Amount:   20000000,
		Currency: "UZS",
		ChargeID: "charge-lt",
	})
	require.NoError(t, err)

	assert.Nil(t, sub.EndDate())
	assert.True(t, sub.IsLifetime())
}

func TestActivateSubscription_PlanNotFound(t *testing.T) {
	store := newFakeActivationStore()
	uc := NewActivateSubscriptionUseCase(store, newFakePlanRepo(), testLogger())

	_, err := uc.Execute(context.Background(), ActivateSubscriptionInput{
		UserID:   111,
		PlanID:   42,
		Amount:   100,
		Currency: "UZS",
		ChargeID: "charge-2",
	})
	assert.ErrorIs(t, err, subscription.ErrPlanNotFound)
	assert.Empty(t, store.created)
}

func TestActivateSubscription_InactivePlanRejected(t *testing.T) {
	plan := mustPlan(t, "Old plan", intPtr(30), 100)
	planRepo := newFakePlanRepo()
	require.NoError(t, planRepo.Create(context.Background(), plan))
	plan.Deactivate()

	uc := NewActivateSubscriptionUseCase(newFakeActivationStore(), planRepo, testLogger())

	_, err := uc.Execute(context.Background(), ActivateSubscriptionInput{
		UserID:   111,
		PlanID:   plan.ID(),
		Amount:   100,
		Currency: "UZS",
		ChargeID: "charge-3",
	})
	assert.ErrorIs(t, err, subscription.ErrPlanInactive)
}

func TestActivateSubscription_DuplicateChargeCreatesNothing(t *testing.T) {
	plan := mustPlan(t, "Monthly", intPtr(30), 100)
	planRepo := newFakePlanRepo()
	require.NoError(t, planRepo.Create(context.Background(), plan))

	store := newFakeActivationStore()
	uc := NewActivateSubscriptionUseCase(store, planRepo, testLogger())

	input := ActivateSubscriptionInput{
		UserID:   111,
		PlanID:   plan.ID(),
		Amount:   100,
		Currency: "UZS",
		ChargeID: "charge-dup",
	}

	_, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, payment.ErrDuplicateCharge)
	assert.Len(t, store.created, 1, "redelivered confirmation must not grant a second subscription")
}

func TestActivateSubscription_FailedWriteLeavesNothingBehind(t *testing.T) {
	plan := mustPlan(t, "Monthly", intPtr(30), 100)
	planRepo := newFakePlanRepo()
	require.NoError(t, planRepo.Create(context.Background(), plan))

	store := newFakeActivationStore()
	store.writeErr = errors.New("connection reset")
	uc := NewActivateSubscriptionUseCase(store, planRepo, testLogger())

	input := ActivateSubscriptionInput{
		UserID:   111,
		PlanID:   plan.ID(),
		Amount:   100,
		Currency: "UZS",
		ChargeID: "charge-retry",
	}

	_, err := uc.Execute(context.Background(), input)
	require.Error(t, err)
	assert.False(t, store.hasCharge("charge-retry"), "failed activation must not leave a payment row")
	assert.Empty(t, store.created)

	// A redelivery of the same confirmation must succeed once the store recovers.
	store.writeErr = nil
	sub, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Len(t, store.created, 1)
}

func TestActivateSubscription_StackedPurchasesAllowed(t *testing.T) {
	plan := mustPlan(t, "Monthly", intPtr(30), 100)
	planRepo := newFakePlanRepo()
	require.NoError(t, planRepo.Create(context.Background(), plan))

	store := newFakeActivationStore()
	uc := NewActivateSubscriptionUseCase(store, planRepo, testLogger())

	for _, chargeID := range []string{"charge-a", "charge-b"} {
		_, err := uc.Execute(context.Background(), ActivateSubscriptionInput{
			UserID:   111,
			PlanID:   plan.ID(),
			Amount:   100,
			Currency: "UZS",
			ChargeID: chargeID,
		})
		require.NoError(t, err)
	}

	assert.Len(t, store.created, 2)
}
