package payment

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrDuplicateCharge is returned when a provider charge ID was already
	// used to activate a subscription. The payments.charge_id unique index
	// is the arbiter, so concurrent deliveries of the same confirmation
	// serialize in the store.
	ErrDuplicateCharge = errors.New("duplicate payment charge")
)
