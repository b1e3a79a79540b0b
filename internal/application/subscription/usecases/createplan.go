package usecases

import (
	"context"
	"fmt"

	"kursly/internal/domain/subscription"
	"kursly/internal/shared/logger"
)

// CreatePlanUseCase adds a new plan to the catalog.
type CreatePlanUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

// NewCreatePlanUseCase creates a new CreatePlanUseCase
func NewCreatePlanUseCase(
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

// Execute creates an active plan. durationDays nil means lifetime; price is
// in minor currency units.
func (uc *CreatePlanUseCase) Execute(ctx context.Context, name string, durationDays *int, price int64) (*subscription.Plan, error) {
	plan, err := subscription.NewPlan(name, durationDays, price)
	if err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return plan, nil
}
