package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kursly/internal/domain/payment"
	"kursly/internal/infrastructure/persistence/mappers"
	"kursly/internal/infrastructure/persistence/models"
	"kursly/internal/shared/logger"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PaymentMapper
	logger logger.Interface
}

func NewPaymentRepository(
	db *gorm.DB,
	logger logger.Interface,
) payment.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mappers.NewPaymentMapper(),
		logger: logger,
	}
}

// Create inserts the payment row. The unique index on charge_id arbitrates
// concurrent deliveries of the same confirmation: the loser gets
// ErrDuplicateCharge.
func (r *PaymentRepositoryImpl) Create(ctx context.Context, p *payment.Payment) error {
	model := r.mapper.ToModel(p)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return payment.ErrDuplicateCharge
		}
		r.logger.Errorw("failed to create payment in database", "error", err)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set payment ID: %w", err)
	}

	r.logger.Infow("payment recorded", "id", model.ID, "user_id", model.UserID, "charge_id", model.ChargeID)
	return nil
}

func (r *PaymentRepositoryImpl) GetByChargeID(ctx context.Context, chargeID string) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := r.db.WithContext(ctx).Where("charge_id = ?", chargeID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment by charge ID", "charge_id", chargeID, "error", err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PaymentRepositoryImpl) ExistsByChargeID(ctx context.Context, chargeID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("charge_id = ?", chargeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check charge ID: %w", err)
	}

	return count > 0, nil
}

func (r *PaymentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return count, nil
}

func (r *PaymentRepositoryImpl) SumAmount(ctx context.Context) (int64, error) {
	var sum int64

	err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}

	return sum, nil
}
