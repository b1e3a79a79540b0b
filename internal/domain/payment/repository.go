package payment

import "context"

type PaymentRepository interface {
	// Create inserts the payment record. Returns ErrDuplicateCharge when a
	// payment with the same charge ID already exists.
	Create(ctx context.Context, payment *Payment) error
	GetByChargeID(ctx context.Context, chargeID string) (*Payment, error)
	ExistsByChargeID(ctx context.Context, chargeID string) (bool, error)
	Count(ctx context.Context) (int64, error)
	SumAmount(ctx context.Context) (int64, error)
}
