package entity

import (
	"gorm.io/gorm"
)

// Admin is the restaurant account. The original client uses admin_id and
// restaurantId interchangeably: an admin owns exactly one storefront, so the
// admin id IS the restaurant id on the wire.
type Admin struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Password    string `json:"-"`

	FoodItems    []FoodItem    `gorm:"foreignKey:AdminID" json:"-"`
	Orders       []Order       `gorm:"foreignKey:AdminID" json:"-"`
	DeviceTokens []DeviceToken `gorm:"foreignKey:AdminID" json:"-"`
}
