package repository

import (
	"github.com/priyathamsetti1/aditya-foods/entity"
	"gorm.io/gorm"
)

type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

// Restaurant is the public projection of an admin account.
type Restaurant struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (r *CatalogRepository) ListRestaurants() ([]Restaurant, error) {
	var out []Restaurant
	err := r.DB.Model(&entity.Admin{}).
		Select("id, name, description, image_url").
		Order("id ASC").
		Scan(&out).Error
	return out, err
}

func (r *CatalogRepository) RestaurantExists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Admin{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ---------------- Food items ----------------

func (r *CatalogRepository) ListFoodItems(adminID uint, onlyAvailable bool) ([]entity.FoodItem, error) {
	var items []entity.FoodItem
	db := r.DB.Where("admin_id = ?", adminID)
	if onlyAvailable {
		db = db.Where("available = ?", true)
	}
	err := db.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *CatalogRepository) GetFoodItem(id uint) (*entity.FoodItem, error) {
	var it entity.FoodItem
	if err := r.DB.First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CatalogRepository) CreateFoodItem(tx *gorm.DB, it *entity.FoodItem) error {
	return tx.Create(it).Error
}

// DeleteFoodItem removes an item only from its owner's menu.
func (r *CatalogRepository) DeleteFoodItem(tx *gorm.DB, id, adminID uint) (int64, error) {
	res := tx.Where("id = ? AND admin_id = ?", id, adminID).Delete(&entity.FoodItem{})
	return res.RowsAffected, res.Error
}
