package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

type Order struct {
	gorm.Model
	Subtotal    int64 `json:"subtotal"`
	PlatformFee int64 `json:"platform_fee"`
	Total       int64 `json:"amount"` // locked at checkout, minor units

	UserID uint `json:"ordered_person_id"`
	User   User `json:"-"`

	AdminID uint  `json:"admin_id"`
	Admin   Admin `json:"-"`

	PaymentID      string  `json:"payment_id"`
	IdempotencyKey *string `json:"-" gorm:"uniqueIndex"`

	Status        string     `json:"status" gorm:"default:pending"`
	OTP           string     `json:"otp"`
	OtpVerifiedAt *time.Time `json:"-"`
	OrderDate     time.Time  `json:"orderDate"`

	Items []OrderItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
