package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrItemNotFound indicates a cart line lookup by identity key found no match.
	ErrItemNotFound = errors.New("item not found in cart")
	// ErrInvalidQuantity indicates a quantity that is zero, negative or above the stock ceiling.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrCouponInvalid wraps the reason a coupon cannot be applied.
	ErrCouponInvalid = errors.New("coupon invalid")
	// ErrOrderNotCancellable indicates the order already left the cancellable states.
	ErrOrderNotCancellable = errors.New("order not cancellable")
	// ErrValidation wraps input validation failures so transports can tell
	// them apart from internal errors.
	ErrValidation = errors.New("invalid input")
)
