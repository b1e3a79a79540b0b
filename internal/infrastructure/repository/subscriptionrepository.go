package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"kursly/internal/domain/subscription"
	"kursly/internal/infrastructure/persistence/mappers"
	"kursly/internal/infrastructure/persistence/models"
	"kursly/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := r.mapper.ToModel(sub)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "user_id", model.UserID, "plan_id", model.PlanID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subModels).Error; err != nil {
		r.logger.Errorw("failed to get subscriptions by user ID", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	return r.mapper.ToEntities(subModels)
}

// ResolveActive picks the row granting access at the given time. Rows with
// a NULL end date sort first so lifetime access always wins over a stacked
// finite renewal.
func (r *SubscriptionRepositoryImpl) ResolveActive(ctx context.Context, userID int64, now time.Time) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Where("end_date IS NULL OR end_date > ?", now).
		Order("end_date IS NULL DESC").
		Order("end_date DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to resolve active subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to resolve active subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// DeactivateExpired selects and flips expired rows in a single transaction.
// NULL end dates are excluded by the query, so lifetime rows can never be
// swept regardless of the cutoff.
func (r *SubscriptionRepositoryImpl) DeactivateExpired(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	var expiredModels []*models.SubscriptionModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, now).
			Find(&expiredModels).Error; err != nil {
			return fmt.Errorf("failed to find expired subscriptions: %w", err)
		}

		if len(expiredModels) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(expiredModels))
		for _, m := range expiredModels {
			ids = append(ids, m.ID)
		}

		if err := tx.Model(&models.SubscriptionModel{}).
			Where("id IN ?", ids).
			Updates(map[string]any{"is_active": false, "updated_at": now}).Error; err != nil {
			return fmt.Errorf("failed to deactivate expired subscriptions: %w", err)
		}

		for _, m := range expiredModels {
			m.IsActive = false
			m.UpdatedAt = now
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("expired subscription sweep failed", "error", err)
		return nil, err
	}

	return r.mapper.ToEntities(expiredModels)
}

func (r *SubscriptionRepositoryImpl) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("is_active = ?", true).
		Where("end_date IS NULL OR end_date > ?", now).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active subscriptions: %w", err)
	}

	return count, nil
}
