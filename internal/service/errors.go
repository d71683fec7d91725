package service

import "errors"

// Sentinel errors translated to HTTP status codes by the handlers.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrIDRequired        = errors.New("id is required")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrRoleNotAllowed    = errors.New("role cannot be self-registered")
	ErrInvalidCategory   = errors.New("unknown category")
	ErrInvalidPercent    = errors.New("commission percent must be between 0 and 100")
	ErrSellerNotVerified = errors.New("seller is not verified")
	ErrProductInactive   = errors.New("product is not available")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrPaymentSignature  = errors.New("payment signature verification failed")
)
