package services

import (
	"github.com/priyathamsetti1/aditya-foods/entity"
)

// PlatformFee is the flat fee added to every order: ₹10.00 in paise. All
// pricing is integer math in minor units; formatting to rupees happens at
// the client.
const PlatformFee int64 = 1000

type PriceBreakdown struct {
	Subtotal    int64 `json:"subtotal"`
	PlatformFee int64 `json:"platform_fee"`
	Total       int64 `json:"total"`
}

// Price derives the breakdown from cart lines. Pure; recomputed on every
// cart change and snapshotted once at the start of a checkout attempt.
func Price(items []entity.CartItem) PriceBreakdown {
	if len(items) == 0 {
		return PriceBreakdown{}
	}
	var subtotal int64
	for _, it := range items {
		subtotal += it.UnitPrice * int64(it.Quantity)
	}
	return PriceBreakdown{
		Subtotal:    subtotal,
		PlatformFee: PlatformFee,
		Total:       subtotal + PlatformFee,
	}
}
