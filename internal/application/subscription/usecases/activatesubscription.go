package usecases

import (
	"context"
	"fmt"
	"time"

	"kursly/internal/domain/payment"
	"kursly/internal/domain/subscription"
	"kursly/internal/shared/biztime"
	"kursly/internal/shared/logger"
)

// ActivationStore persists the payment and subscription rows of one
// activation in a single transaction: either both land or neither does.
type ActivationStore interface {
	CreateWithPayment(ctx context.Context, pay *payment.Payment, sub *subscription.Subscription) error
}

// ActivateSubscriptionInput carries the confirmed payment details.
type ActivateSubscriptionInput struct {
	UserID   int64
	PlanID   uint
	Amount   int64 // minor currency units
	Currency string
	Provider string
	ChargeID string
}

// ActivateSubscriptionUseCase turns a confirmed payment into an active
// subscription. Both rows are written in one transaction; the unique charge
// ID makes a redelivered confirmation fail with ErrDuplicateCharge before
// any entitlement is granted twice.
type ActivateSubscriptionUseCase struct {
	store    ActivationStore
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

// NewActivateSubscriptionUseCase creates a new ActivateSubscriptionUseCase
func NewActivateSubscriptionUseCase(
	store ActivationStore,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *ActivateSubscriptionUseCase {
	return &ActivateSubscriptionUseCase{
		store:    store,
		planRepo: planRepo,
		logger:   logger,
	}
}

// Execute records the payment and creates the subscription atomically. The
// end date is computed once from the plan duration at activation time;
// lifetime plans produce a nil end date. Stacked purchases are allowed, the
// resolver picks the best row at read time.
func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, input ActivateSubscriptionInput) (*subscription.Subscription, error) {
	plan, err := uc.planRepo.GetByID(ctx, input.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil {
		return nil, subscription.ErrPlanNotFound
	}
	if !plan.IsActive() {
		return nil, subscription.ErrPlanInactive
	}

	p, err := payment.NewPayment(input.UserID, input.Amount, input.Currency, input.Provider, input.ChargeID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment: %w", err)
	}

	start := biztime.NowUTC()
	sub, err := subscription.NewSubscription(input.UserID, plan.ID(), start, plan.EndDateFrom(start))
	if err != nil {
		return nil, fmt.Errorf("invalid subscription: %w", err)
	}

	// ErrDuplicateCharge included: the caller decides how to report it
	if err := uc.store.CreateWithPayment(ctx, p, sub); err != nil {
		return nil, err
	}

	uc.logger.Infow("subscription activated",
		"user_id", input.UserID,
		"plan_id", plan.ID(),
		"subscription_id", sub.ID(),
		"end_date", formatEndDate(sub.EndDate()),
	)

	return sub, nil
}

func formatEndDate(end *time.Time) string {
	if end == nil {
		return "lifetime"
	}
	return end.Format(time.RFC3339)
}
