package usecases

import (
	"context"
	"fmt"

	"kursly/internal/domain/subscription"
	"kursly/internal/shared/biztime"
	"kursly/internal/shared/logger"
)

// SweepExpiredUseCase deactivates subscriptions whose end date has passed.
// The repository does the select-and-flip in one transaction, so two
// overlapping sweeps never report the same row twice.
type SweepExpiredUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

// NewSweepExpiredUseCase creates a new SweepExpiredUseCase
func NewSweepExpiredUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *SweepExpiredUseCase {
	return &SweepExpiredUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns the subscriptions deactivated by this run. Lifetime rows
// are never swept. An empty slice means nothing expired since the last run.
func (uc *SweepExpiredUseCase) Execute(ctx context.Context) ([]*subscription.Subscription, error) {
	expired, err := uc.subscriptionRepo.DeactivateExpired(ctx, biztime.NowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to sweep expired subscriptions: %w", err)
	}

	if len(expired) > 0 {
		uc.logger.Infow("expired subscriptions deactivated", "count", len(expired))
	}

	return expired, nil
}
