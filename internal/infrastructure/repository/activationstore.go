package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kursly/internal/domain/payment"
	"kursly/internal/domain/subscription"
	"kursly/internal/infrastructure/persistence/mappers"
	"kursly/internal/shared/logger"
)

// ActivationStoreImpl writes the payment and subscription rows of one
// activation in a single database transaction.
type ActivationStoreImpl struct {
	db                 *gorm.DB
	paymentMapper      mappers.PaymentMapper
	subscriptionMapper mappers.SubscriptionMapper
	logger             logger.Interface
}

func NewActivationStore(
	db *gorm.DB,
	logger logger.Interface,
) *ActivationStoreImpl {
	return &ActivationStoreImpl{
		db:                 db,
		paymentMapper:      mappers.NewPaymentMapper(),
		subscriptionMapper: mappers.NewSubscriptionMapper(),
		logger:             logger,
	}
}

// CreateWithPayment inserts both rows or neither. The unique index on
// charge_id arbitrates concurrent deliveries of the same confirmation: the
// loser's transaction rolls back whole and surfaces ErrDuplicateCharge.
func (s *ActivationStoreImpl) CreateWithPayment(ctx context.Context, pay *payment.Payment, sub *subscription.Subscription) error {
	payModel := s.paymentMapper.ToModel(pay)
	subModel := s.subscriptionMapper.ToModel(sub)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payModel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return payment.ErrDuplicateCharge
			}
			return fmt.Errorf("failed to create payment: %w", err)
		}
		if err := tx.Create(subModel).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, payment.ErrDuplicateCharge) {
			s.logger.Errorw("failed to persist activation", "user_id", pay.UserID(), "error", err)
		}
		return err
	}

	if err := pay.SetID(payModel.ID); err != nil {
		return fmt.Errorf("failed to set payment ID: %w", err)
	}
	if err := sub.SetID(subModel.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	s.logger.Infow("activation persisted",
		"payment_id", payModel.ID,
		"subscription_id", subModel.ID,
		"user_id", pay.UserID(),
		"charge_id", pay.ChargeID(),
	)
	return nil
}
