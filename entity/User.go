package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"-"`

	Orders       []Order       `json:"-"`
	CartItems    []CartItem    `json:"-"`
	DeviceTokens []DeviceToken `json:"-"`
}
