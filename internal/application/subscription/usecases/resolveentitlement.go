package usecases

import (
	"context"
	"fmt"

	"kursly/internal/domain/subscription"
	"kursly/internal/shared/biztime"
	"kursly/internal/shared/logger"
)

// ResolveEntitlementUseCase answers the single question every gate asks:
// does this user hold access right now, and through which subscription.
type ResolveEntitlementUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

// NewResolveEntitlementUseCase creates a new ResolveEntitlementUseCase
func NewResolveEntitlementUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *ResolveEntitlementUseCase {
	return &ResolveEntitlementUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns the subscription granting access at the current time, or
// nil when the user holds none. With stacked subscriptions the row with the
// latest end date wins; lifetime rows always win.
func (uc *ResolveEntitlementUseCase) Execute(ctx context.Context, userID int64) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.ResolveActive(ctx, userID, biztime.NowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entitlement: %w", err)
	}
	return sub, nil
}
