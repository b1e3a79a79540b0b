package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kursly/internal/domain/subscription"
	"kursly/internal/infrastructure/persistence/models"
	"kursly/internal/shared/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A file database, not :memory:, because gorm pools connections and
	// every new :memory: connection is an empty database.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.SubscriptionModel{},
		&models.PaymentModel{},
	))
	return db
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustCreateSubscription(t *testing.T, repo subscription.SubscriptionRepository, userID int64, planID uint, start time.Time, end *time.Time) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.NewSubscription(userID, planID, start, end)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), sub))
	return sub
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestSubscriptionRepository_ResolveActive_LatestExpiringWins(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), testLogger())
	now := time.Now().UTC()

	mustCreateSubscription(t, repo, 111, 1, now, timePtr(now.AddDate(0, 0, 10)))
	mustCreateSubscription(t, repo, 111, 2, now, timePtr(now.AddDate(0, 0, 30)))

	sub, err := repo.ResolveActive(context.Background(), 111, now)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, uint(2), sub.PlanID(), "the stacked row expiring last must win")
}

func TestSubscriptionRepository_ResolveActive_LifetimeBeatsFinite(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), testLogger())
	now := time.Now().UTC()

	mustCreateSubscription(t, repo, 111, 1, now, timePtr(now.AddDate(0, 0, 30)))
	mustCreateSubscription(t, repo, 111, 2, now, nil)

	sub, err := repo.ResolveActive(context.Background(), 111, now)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.True(t, sub.IsLifetime())
	assert.Equal(t, uint(2), sub.PlanID())
}

func TestSubscriptionRepository_ResolveActive_ExpiredRowsYieldNil(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), testLogger())
	now := time.Now().UTC()

	mustCreateSubscription(t, repo, 111, 1, now.AddDate(0, 0, -40), timePtr(now.Add(-time.Hour)))

	sub, err := repo.ResolveActive(context.Background(), 111, now)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestSubscriptionRepository_DeactivateExpired_SweepsOnlyFinitePast(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), testLogger())
	now := time.Now().UTC()

	mustCreateSubscription(t, repo, 111, 1, now.AddDate(0, 0, -40), timePtr(now.Add(-time.Hour)))
	mustCreateSubscription(t, repo, 222, 2, now, timePtr(now.AddDate(0, 0, 30)))
	mustCreateSubscription(t, repo, 333, 3, now, nil)

	swept, err := repo.DeactivateExpired(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, swept, 1)
	assert.Equal(t, int64(111), swept[0].UserID())
	assert.False(t, swept[0].IsActive())

	// The future and lifetime rows keep granting access.
	future, err := repo.ResolveActive(context.Background(), 222, now)
	require.NoError(t, err)
	require.NotNil(t, future)
	lifetime, err := repo.ResolveActive(context.Background(), 333, now)
	require.NoError(t, err)
	require.NotNil(t, lifetime)

	rows, err := repo.GetByUserID(context.Background(), 111)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsActive())
}

func TestSubscriptionRepository_DeactivateExpired_SecondSweepIsEmpty(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), testLogger())
	now := time.Now().UTC()

	mustCreateSubscription(t, repo, 111, 1, now.AddDate(0, 0, -40), timePtr(now.Add(-time.Hour)))

	first, err := repo.DeactivateExpired(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := repo.DeactivateExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, second, "a swept row must never be reported twice")
}
