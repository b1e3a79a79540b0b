package usecases

import (
	"context"
	"fmt"

	"kursly/internal/domain/subscription"
)

// ListPlansUseCase returns the purchasable plan catalog.
type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
}

// NewListPlansUseCase creates a new ListPlansUseCase
func NewListPlansUseCase(planRepo subscription.PlanRepository) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo}
}

// Execute lists active plans ordered by price.
func (uc *ListPlansUseCase) Execute(ctx context.Context) ([]*subscription.Plan, error) {
	plans, err := uc.planRepo.GetAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}
