package services

import (
	"context"
	"errors"
	"time"

	"github.com/priyathamsetti1/aditya-foods/pkg/razorpay"
)

type PaymentStatus string

const (
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentCancelled  PaymentStatus = "cancelled"
	PaymentFailed     PaymentStatus = "failed"
)

// PaymentOutcome is the adapter's verdict on one authorize call. Exactly one
// of the three statuses; PaymentID is set only when Authorized.
type PaymentOutcome struct {
	Status    PaymentStatus
	PaymentID string
	Reason    string
}

// PaymentGateway is the external authorization capability. pkg/razorpay is
// the production implementation; tests plug in fakes.
type PaymentGateway interface {
	Authorize(ctx context.Context, amountMinor int64, payer razorpay.Payer) (*razorpay.AuthorizeResult, error)
}

// PaymentAdapter wraps the gateway with the rules the checkout flow relies
// on: amounts must be positive, every call has a deadline, a timeout is a
// Failed outcome rather than an indeterminate state, and nothing retries.
type PaymentAdapter struct {
	Gateway PaymentGateway
	Timeout time.Duration
}

func NewPaymentAdapter(gw PaymentGateway, timeout time.Duration) *PaymentAdapter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PaymentAdapter{Gateway: gw, Timeout: timeout}
}

func (a *PaymentAdapter) Authorize(ctx context.Context, amountMinor int64, payer razorpay.Payer) (PaymentOutcome, error) {
	if amountMinor <= 0 {
		return PaymentOutcome{}, ErrInvalidAmount
	}

	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	res, err := a.Gateway.Authorize(ctx, amountMinor, payer)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		return PaymentOutcome{Status: PaymentFailed, Reason: reason}, nil
	}
	if res.Declined {
		return PaymentOutcome{Status: PaymentCancelled, Reason: res.Reason}, nil
	}
	return PaymentOutcome{Status: PaymentAuthorized, PaymentID: res.PaymentID}, nil
}
