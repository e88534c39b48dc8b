package entity

import (
	"gorm.io/gorm"
)

type FoodItem struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // minor units (paise)
	ImageURL    string `json:"image_url"`
	Available   bool   `json:"available" gorm:"default:true"`

	AdminID uint  `json:"admin_id"`
	Admin   Admin `json:"-"`
}
