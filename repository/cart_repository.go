package repository

import (
	"errors"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// Items returns the user's cart lines, optionally scoped to one restaurant,
// in insertion order.
func (r *CartRepository) Items(userID uint, adminID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	db := r.DB.Where("user_id = ?", userID)
	if adminID != 0 {
		db = db.Where("admin_id = ?", adminID)
	}
	err := db.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *CartRepository) GetLine(userID, adminID, foodItemID uint) (*entity.CartItem, error) {
	var line entity.CartItem
	err := r.DB.Where("user_id = ? AND admin_id = ? AND food_item_id = ?", userID, adminID, foodItemID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// UpsertLine merges onto an existing (user, restaurant, item) line by summing
// quantities, or appends a new line. Insertion order is preserved: merged
// lines keep their original id.
func (r *CartRepository) UpsertLine(tx *gorm.DB, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("user_id = ? AND admin_id = ? AND food_item_id = ?",
		row.UserID, row.AdminID, row.FoodItemID).First(&exist).Error
	if err == nil {
		exist.Quantity += row.Quantity
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(row).Error
}

// SetQuantity pins a line to qty; qty <= 0 removes the line.
func (r *CartRepository) SetQuantity(tx *gorm.DB, userID, adminID, foodItemID uint, qty int) error {
	if qty <= 0 {
		return r.RemoveLine(tx, userID, adminID, foodItemID)
	}
	return tx.Model(&entity.CartItem{}).
		Where("user_id = ? AND admin_id = ? AND food_item_id = ?", userID, adminID, foodItemID).
		Update("quantity", qty).Error
}

// AdjustQuantity shifts a line by delta; dropping to zero or below removes it.
// Returns gorm.ErrRecordNotFound when the line does not exist.
func (r *CartRepository) AdjustQuantity(tx *gorm.DB, userID, adminID, foodItemID uint, delta int) error {
	var line entity.CartItem
	err := tx.Where("user_id = ? AND admin_id = ? AND food_item_id = ?", userID, adminID, foodItemID).
		First(&line).Error
	if err != nil {
		return err
	}
	line.Quantity += delta
	if line.Quantity <= 0 {
		return tx.Delete(&line).Error
	}
	return tx.Save(&line).Error
}

func (r *CartRepository) RemoveLine(tx *gorm.DB, userID, adminID, foodItemID uint) error {
	return tx.Where("user_id = ? AND admin_id = ? AND food_item_id = ?", userID, adminID, foodItemID).
		Delete(&entity.CartItem{}).Error
}

// RemoveLines deletes specific cart rows by id. Checkout uses it to clear
// exactly the snapshot it charged, so lines added mid-payment survive.
func (r *CartRepository) RemoveLines(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("id IN ?", ids).Delete(&entity.CartItem{}).Error
}

// Clear empties the user's cart for one restaurant. Clearing an already
// empty cart is a no-op, not an error.
func (r *CartRepository) Clear(tx *gorm.DB, userID, adminID uint) error {
	return tx.Where("user_id = ? AND admin_id = ?", userID, adminID).
		Delete(&entity.CartItem{}).Error
}
