package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderCancelled       = errors.New("order has been cancelled")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrSignatureInvalid     = errors.New("payment signature verification failed")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrRateLimited          = errors.New("too many requests")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrUnknownPlan          = errors.New("unknown subscription plan")
	ErrAmountAboveCeiling   = errors.New("order total exceeds the online payment limit")
)

// ValidationError marks a client-supplied field as malformed. Handlers map
// it to a 400 response with the field-level message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// GatewayError wraps a payment gateway failure. No order is persisted when
// one occurs during checkout.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
