package entity

import (
	"gorm.io/gorm"
)

// CartItem is one line of a user's per-restaurant cart. The cart itself is
// implicit: the set of a user's rows sharing one AdminID. Unique per
// (user, restaurant, item); adding the same item again sums quantities.
type CartItem struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_cart_line"`
	User   User `json:"-"`

	AdminID uint  `json:"restaurant_id" gorm:"uniqueIndex:idx_cart_line"`
	Admin   Admin `json:"-"`

	FoodItemID uint     `json:"item_id" gorm:"uniqueIndex:idx_cart_line"`
	FoodItem   FoodItem `json:"-"`

	ItemName  string `json:"item_name"`
	UnitPrice int64  `json:"price"` // minor units, snapshot at add time
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url"`
}
