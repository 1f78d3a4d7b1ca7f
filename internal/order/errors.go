package order

import "errors"

var (
	ErrEmptyCart = errors.New("cart is empty, nothing to check out")

	// ErrValidation covers missing or malformed checkout fields.
	ErrValidation = errors.New("invalid checkout submission")

	// ErrTotalsMismatch means the client-supplied totals disagree with the
	// totals recomputed server-side from the submitted line items.
	ErrTotalsMismatch = errors.New("submitted totals do not match computed totals")

	ErrInvalidSignature = errors.New("payment signature verification failed")

	ErrNotPaid          = errors.New("order has not been paid")
	ErrAlreadyDelivered = errors.New("order already delivered")

	// ErrForbidden is returned when a caller reads an order it does not own.
	ErrForbidden = errors.New("order belongs to another user")
)
