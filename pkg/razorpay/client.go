package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the payment authorization service. The mobile app used the
// vendor's checkout SDK on-device; server-side checkout calls the same
// capability over HTTP: one authorize call, one result, no retries.
type Client struct {
	BaseURL    string
	Key        string
	Secret     string
	HTTPClient *http.Client
}

func NewClient(baseURL, key, secret string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Key:        key,
		Secret:     secret,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type Payer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type authorizeReq struct {
	Amount      int64  `json:"amount"` // minor units
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Payer       Payer  `json:"prefill"`
}

type authorizeRes struct {
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	Error             *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// AuthorizeResult reports the gateway's verdict. Declined covers both
// explicit declines and user cancellation; transport and protocol problems
// come back as errors instead.
type AuthorizeResult struct {
	PaymentID string
	Declined  bool
	Reason    string
}

func (c *Client) Authorize(ctx context.Context, amountMinor int64, payer Payer) (*AuthorizeResult, error) {
	body := authorizeReq{
		Amount:      amountMinor,
		Currency:    "INR",
		Description: "Order Payment",
		Payer:       payer,
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/payments/authorize", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.Key, c.Secret)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var out authorizeRes
	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
			return nil, err
		}
		if out.RazorpayPaymentID == "" {
			return nil, fmt.Errorf("authorize response missing payment id")
		}
		return &AuthorizeResult{PaymentID: out.RazorpayPaymentID}, nil

	case res.StatusCode == http.StatusPaymentRequired || res.StatusCode == http.StatusBadRequest:
		// The gateway answered: the charge was refused or abandoned.
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil || out.Error == nil {
			return &AuthorizeResult{Declined: true, Reason: "payment declined"}, nil
		}
		return &AuthorizeResult{Declined: true, Reason: out.Error.Description}, nil

	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("payment gateway returned %d: %s", res.StatusCode, string(b))
	}
}
