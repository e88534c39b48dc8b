package services

import (
	"path/filepath"
	"testing"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Admin{},
		&entity.FoodItem{},
		&entity.CartItem{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.DeviceToken{},
	))
	return db
}

// seedRestaurant creates one admin with a two-item menu and returns the
// admin plus the items.
func seedRestaurant(t *testing.T, db *gorm.DB) (entity.Admin, entity.FoodItem, entity.FoodItem) {
	t.Helper()
	admin := entity.Admin{Name: "Aditya Foods", Password: "x"}
	require.NoError(t, db.Create(&admin).Error)

	dosa := entity.FoodItem{Name: "Masala Dosa", Price: 8000, Available: true, AdminID: admin.ID}
	biryani := entity.FoodItem{Name: "Veg Biryani", Price: 12000, Available: true, AdminID: admin.ID}
	require.NoError(t, db.Create(&dosa).Error)
	require.NoError(t, db.Create(&biryani).Error)
	return admin, dosa, biryani
}

func cartLines(t *testing.T, db *gorm.DB, userID, adminID uint) []entity.CartItem {
	t.Helper()
	var items []entity.CartItem
	require.NoError(t, db.Where("user_id = ? AND admin_id = ?", userID, adminID).Order("id ASC").Find(&items).Error)
	return items
}
