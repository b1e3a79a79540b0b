package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kursly/internal/domain/payment"
	"kursly/internal/domain/subscription"
)

func TestActivationStore_CreateWithPayment(t *testing.T) {
	db := newTestDB(t)
	store := NewActivationStore(db, testLogger())
	subRepo := NewSubscriptionRepository(db, testLogger())
	now := time.Now().UTC()

	pay, err := payment.NewPayment(111, 5000000, "UZS", "telegram", "chg-1")
	require.NoError(t, err)
	sub, err := subscription.NewSubscription(111, 1, now, timePtr(now.AddDate(0, 0, 30)))
	require.NoError(t, err)

	require.NoError(t, store.CreateWithPayment(context.Background(), pay, sub))
	assert.NotZero(t, pay.ID())
	assert.NotZero(t, sub.ID())

	resolved, err := subRepo.ResolveActive(context.Background(), 111, now)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, sub.ID(), resolved.ID())
}

func TestActivationStore_DuplicateChargeRollsBackWhole(t *testing.T) {
	db := newTestDB(t)
	store := NewActivationStore(db, testLogger())
	subRepo := NewSubscriptionRepository(db, testLogger())
	now := time.Now().UTC()

	first, err := payment.NewPayment(111, 100, "UZS", "telegram", "chg-dup")
	require.NoError(t, err)
	firstSub, err := subscription.NewSubscription(111, 1, now, timePtr(now.AddDate(0, 0, 30)))
	require.NoError(t, err)
	require.NoError(t, store.CreateWithPayment(context.Background(), first, firstSub))

	second, err := payment.NewPayment(111, 100, "UZS", "telegram", "chg-dup")
	require.NoError(t, err)
	secondSub, err := subscription.NewSubscription(111, 1, now, timePtr(now.AddDate(0, 0, 30)))
	require.NoError(t, err)

	err = store.CreateWithPayment(context.Background(), second, secondSub)
	assert.ErrorIs(t, err, payment.ErrDuplicateCharge)

	rows, err := subRepo.GetByUserID(context.Background(), 111)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "the losing delivery must not leave a second subscription")
}
