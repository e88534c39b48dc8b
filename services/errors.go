package services

import (
	"errors"
	"fmt"
)

var (
	ErrCartEmpty          = errors.New("cart is empty, nothing to checkout")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrInvalidAmount      = errors.New("charge amount must be positive")
	ErrPaymentCancelled   = errors.New("payment process was cancelled")
	ErrNotVerified        = errors.New("order not verified")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError is caught before anything touches the network or the DB.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PaymentFailedError is a transport or protocol failure at the payment
// gateway, including timeouts. Distinct from an explicit decline
// (ErrPaymentCancelled): the money definitively did not move here.
type PaymentFailedError struct {
	Reason string
}

func (e *PaymentFailedError) Error() string { return "payment failed: " + e.Reason }

// OrderNotRecordedError is the worst case: the charge went through but the
// order write did not. Callers must surface this distinctly so support can
// reconcile against the payment id.
type OrderNotRecordedError struct {
	PaymentID string
	Err       error
}

func (e *OrderNotRecordedError) Error() string {
	return fmt.Sprintf("payment %s succeeded but order was not recorded: %v", e.PaymentID, e.Err)
}

func (e *OrderNotRecordedError) Unwrap() error { return e.Err }

// SyncError is a failed cart mirror write. The in-memory view a client holds
// and the stored cart no longer agree; the operation must not be reported as
// a success.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string { return fmt.Sprintf("cart sync failed (%s): %v", e.Op, e.Err) }

func (e *SyncError) Unwrap() error { return e.Err }
