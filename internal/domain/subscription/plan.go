package subscription

import (
	"fmt"
	"time"
)

// Plan is a catalog entry. Price is stored in minor currency units (tiyin),
// never floating point. A nil durationDays means lifetime access. Inactive
// plans are hidden from purchase but kept for historical subscription
// references.
type Plan struct {
	id           uint
	name         string
	durationDays *int
	price        int64
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPlan creates a new active plan. durationDays is nil for lifetime plans.
func NewPlan(name string, durationDays *int, price int64) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if durationDays != nil && *durationDays <= 0 {
		return nil, fmt.Errorf("duration days must be positive")
	}
	if price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}

	now := time.Now().UTC()
	return &Plan{
		name:         name,
		durationDays: durationDays,
		price:        price,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence
func ReconstructPlan(
	id uint,
	name string,
	durationDays *int,
	price int64,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}

	return &Plan{
		id:           id,
		name:         name,
		durationDays: durationDays,
		price:        price,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// ID returns the plan ID
func (p *Plan) ID() uint {
	return p.id
}

// Name returns the plan name
func (p *Plan) Name() string {
	return p.name
}

// DurationDays returns the plan duration in days, or nil for lifetime plans
func (p *Plan) DurationDays() *int {
	return p.durationDays
}

// Price returns the plan price in minor currency units
func (p *Plan) Price() int64 {
	return p.price
}

// IsActive returns whether the plan is offered for purchase
func (p *Plan) IsActive() bool {
	return p.isActive
}

// CreatedAt returns when the plan was created
func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the plan was last updated
func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the plan ID (only for persistence layer use)
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

// IsLifetime reports whether the plan grants unbounded access.
func (p *Plan) IsLifetime() bool {
	return p.durationDays == nil
}

// EndDateFrom computes the subscription end date for a purchase made at
// start. Returns nil for lifetime plans; the value is computed once at
// activation and never recomputed.
func (p *Plan) EndDateFrom(start time.Time) *time.Time {
	if p.durationDays == nil {
		return nil
	}
	end := start.AddDate(0, 0, *p.durationDays)
	return &end
}

// Deactivate hides the plan from purchase without deleting it.
func (p *Plan) Deactivate() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.updatedAt = time.Now().UTC()
}

// Activate makes the plan purchasable again.
func (p *Plan) Activate() {
	if p.isActive {
		return
	}
	p.isActive = true
	p.updatedAt = time.Now().UTC()
}
