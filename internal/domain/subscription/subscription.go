package subscription

import (
	"fmt"
	"time"
)

// Subscription is the central access-granting entity. A user accumulates
// rows over time: every purchase inserts a new row and never mutates an
// older one. The only field that changes after creation is isActive, which
// the expiry sweep flips to false once the validity window has elapsed.
// A nil endDate means the subscription never expires via the sweep path.
type Subscription struct {
	id        uint
	userID    int64
	planID    uint
	startDate time.Time
	endDate   *time.Time
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewSubscription creates a new active subscription starting at startDate.
// endDate is nil for lifetime plans.
func NewSubscription(userID int64, planID uint, startDate time.Time, endDate *time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if endDate != nil && !endDate.After(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	now := time.Now().UTC()
	return &Subscription{
		userID:    userID,
		planID:    planID,
		startDate: startDate,
		endDate:   endDate,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(
	id uint,
	userID int64,
	planID uint,
	startDate time.Time,
	endDate *time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}

	return &Subscription{
		id:        id,
		userID:    userID,
		planID:    planID,
		startDate: startDate,
		endDate:   endDate,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the subscription ID
func (s *Subscription) ID() uint {
	return s.id
}

// UserID returns the owning Telegram user ID
func (s *Subscription) UserID() int64 {
	return s.userID
}

// PlanID returns the referenced plan ID
func (s *Subscription) PlanID() uint {
	return s.planID
}

// StartDate returns when the subscription started
func (s *Subscription) StartDate() time.Time {
	return s.startDate
}

// EndDate returns when the subscription ends, or nil for lifetime access
func (s *Subscription) EndDate() *time.Time {
	return s.endDate
}

// IsActive returns the stored active flag
func (s *Subscription) IsActive() bool {
	return s.isActive
}

// CreatedAt returns when the row was created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the row was last updated
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsLifetime reports whether the subscription has no expiry date.
func (s *Subscription) IsLifetime() bool {
	return s.endDate == nil
}

// IsExpiredAt reports whether the validity window has elapsed at the given
// time. Lifetime subscriptions never expire.
func (s *Subscription) IsExpiredAt(now time.Time) bool {
	if s.endDate == nil {
		return false
	}
	return s.endDate.Before(now)
}

// IsCurrentAt reports whether the subscription grants access at the given
// time: the active flag is set and the validity window has not elapsed.
func (s *Subscription) IsCurrentAt(now time.Time) bool {
	return s.isActive && !s.IsExpiredAt(now)
}

// Deactivate flips the active flag off. Idempotent.
func (s *Subscription) Deactivate() {
	if !s.isActive {
		return
	}
	s.isActive = false
	s.updatedAt = time.Now().UTC()
}
