package subscription

import (
	"context"
	"time"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetByUserID(ctx context.Context, userID int64) ([]*Subscription, error)

	// ResolveActive returns the subscription granting access to userID at
	// the given time: is_active and not yet expired, preferring the row with
	// the latest end date (a nil end date counts as latest). Returns
	// (nil, nil) when no row qualifies.
	ResolveActive(ctx context.Context, userID int64, now time.Time) (*Subscription, error)

	// DeactivateExpired atomically flips is_active off on every active row
	// whose end date is before now and returns the rows just deactivated.
	// Rows with a NULL end date are never touched. Calling it again with no
	// intervening activation returns an empty slice.
	DeactivateExpired(ctx context.Context, now time.Time) ([]*Subscription, error)

	CountActive(ctx context.Context, now time.Time) (int64, error)
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetAllActive(ctx context.Context) ([]*Plan, error)
	Update(ctx context.Context, plan *Plan) error
}
