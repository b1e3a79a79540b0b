package payment

import (
	"fmt"
	"time"
)

// Payment is an immutable record of a confirmed external payment. The
// provider-assigned charge ID is unique and serves as the idempotency
// anchor: one charge activates exactly one subscription.
type Payment struct {
	id        uint
	userID    int64
	amount    int64
	currency  string
	provider  string
	chargeID  string
	createdAt time.Time
}

// NewPayment creates a payment record for a confirmed charge. amount is in
// minor currency units.
func NewPayment(userID int64, amount int64, currency, provider, chargeID string) (*Payment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}
	if chargeID == "" {
		return nil, fmt.Errorf("charge ID is required")
	}

	return &Payment{
		userID:    userID,
		amount:    amount,
		currency:  currency,
		provider:  provider,
		chargeID:  chargeID,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructPayment reconstructs a payment from persistence
func ReconstructPayment(
	id uint,
	userID int64,
	amount int64,
	currency, provider, chargeID string,
	createdAt time.Time,
) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if chargeID == "" {
		return nil, fmt.Errorf("charge ID is required")
	}

	return &Payment{
		id:        id,
		userID:    userID,
		amount:    amount,
		currency:  currency,
		provider:  provider,
		chargeID:  chargeID,
		createdAt: createdAt,
	}, nil
}

// ID returns the payment ID
func (p *Payment) ID() uint {
	return p.id
}

// UserID returns the paying Telegram user ID
func (p *Payment) UserID() int64 {
	return p.userID
}

// Amount returns the paid amount in minor currency units
func (p *Payment) Amount() int64 {
	return p.amount
}

// Currency returns the payment currency code
func (p *Payment) Currency() string {
	return p.currency
}

// Provider returns the payment provider identifier
func (p *Payment) Provider() string {
	return p.provider
}

// ChargeID returns the provider-assigned unique charge identifier
func (p *Payment) ChargeID() string {
	return p.chargeID
}

// CreatedAt returns when the payment was recorded
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// SetID sets the payment ID (only for persistence layer use)
func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = id
	return nil
}
