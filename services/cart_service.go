package services

import (
	"errors"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"gorm.io/gorm"
)

// CartService owns the per-user, per-restaurant carts. All mutation funnels
// through here; nothing else writes cart rows.
type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	CatalogRepo *repository.CatalogRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, cat *repository.CatalogRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, CatalogRepo: cat}
}

type AddToCartIn struct {
	RestaurantID uint `json:"restaurantId" binding:"required"`
	ItemID       uint `json:"itemId" binding:"required"`
	Quantity     int  `json:"quantity"`
}

// Items lists the cart; adminID 0 means every restaurant's lines.
func (s *CartService) Items(userID, adminID uint) ([]entity.CartItem, error) {
	return s.CartRepo.Items(userID, adminID)
}

// Breakdown prices one restaurant's cart.
func (s *CartService) Breakdown(userID, adminID uint) (PriceBreakdown, error) {
	items, err := s.CartRepo.Items(userID, adminID)
	if err != nil {
		return PriceBreakdown{}, err
	}
	return Price(items), nil
}

// Add puts qty of an item into the user's cart for that restaurant. Adding
// an item already in the cart sums quantities; the unit price and name are
// snapshotted from the menu on first add.
func (s *CartService) Add(userID uint, in *AddToCartIn) error {
	if in.Quantity <= 0 {
		in.Quantity = 1
	}

	item, err := s.CatalogRepo.GetFoodItem(in.ItemID)
	if err != nil {
		return err
	}
	if item.AdminID != in.RestaurantID {
		return validation("item %d does not belong to restaurant %d", in.ItemID, in.RestaurantID)
	}
	if !item.Available {
		return validation("item %q is not available", item.Name)
	}

	line := &entity.CartItem{
		UserID:     userID,
		AdminID:    in.RestaurantID,
		FoodItemID: item.ID,
		ItemName:   item.Name,
		UnitPrice:  item.Price,
		Quantity:   in.Quantity,
		ImageURL:   item.ImageURL,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpsertLine(tx, line)
	})
	if err != nil {
		return &SyncError{Op: "add-item", Err: err}
	}
	return nil
}

func (s *CartService) Increment(userID, adminID, itemID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.AdjustQuantity(tx, userID, adminID, itemID, +1)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return &SyncError{Op: "increment-item", Err: err}
	}
	return nil
}

func (s *CartService) Decrement(userID, adminID, itemID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.AdjustQuantity(tx, userID, adminID, itemID, -1)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return &SyncError{Op: "decrement-item", Err: err}
	}
	return nil
}

// SetQuantity pins a line; qty <= 0 removes it.
func (s *CartService) SetQuantity(userID, adminID, itemID uint, qty int) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.SetQuantity(tx, userID, adminID, itemID, qty)
	})
	if err != nil {
		return &SyncError{Op: "set-quantity", Err: err}
	}
	return nil
}

// Clear empties one restaurant's cart. Idempotent: clearing an empty cart
// succeeds and does nothing.
func (s *CartService) Clear(userID, adminID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.Clear(tx, userID, adminID)
	})
	if err != nil {
		return &SyncError{Op: "clear", Err: err}
	}
	return nil
}
