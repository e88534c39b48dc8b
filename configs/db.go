package configs

import (
	"github.com/priyathamsetti1/aditya-foods/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(dsn string) {
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {

	// Migrate the schema
	db.AutoMigrate(
		&entity.User{}, &entity.Admin{},
		&entity.FoodItem{},
		&entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.DeviceToken{},
	)
}
