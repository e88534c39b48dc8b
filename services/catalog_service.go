package services

import (
	"strings"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"gorm.io/gorm"
)

type CatalogService struct {
	DB   *gorm.DB
	Repo *repository.CatalogRepository
}

func NewCatalogService(db *gorm.DB, repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{DB: db, Repo: repo}
}

func (s *CatalogService) Restaurants() ([]repository.Restaurant, error) {
	return s.Repo.ListRestaurants()
}

// MenuFor lists what customers can order right now.
func (s *CatalogService) MenuFor(restaurantID uint) ([]entity.FoodItem, error) {
	return s.Repo.ListFoodItems(restaurantID, true)
}

// AdminMenu lists everything on the admin's menu, available or not.
func (s *CatalogService) AdminMenu(adminID uint) ([]entity.FoodItem, error) {
	return s.Repo.ListFoodItems(adminID, false)
}

type NewFoodItemIn struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"` // minor units
	ImageURL    string `json:"image_url"`
	Available   bool   `json:"available"`
}

func (s *CatalogService) AddFoodItem(adminID uint, in *NewFoodItemIn) (*entity.FoodItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, validation("name is required")
	}

	item := &entity.FoodItem{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Available:   in.Available,
		AdminID:     adminID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.CreateFoodItem(tx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) RemoveFoodItem(adminID, itemID uint) error {
	var affected int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.DeleteFoodItem(tx, itemID, adminID)
		affected = n
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
