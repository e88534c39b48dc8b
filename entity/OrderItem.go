package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	FoodItemID uint     `json:"id"`
	FoodItem   FoodItem `json:"-"`

	Name      string `json:"name"`
	UnitPrice int64  `json:"price"` // minor units, copied from the cart line
	Quantity  int    `json:"quantity"`
	Total     int64  `json:"total"`
}
