package configs

import (
	"log"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"golang.org/x/crypto/bcrypt"
)

// Seed the first restaurant account so the admin console has something to
// log in to.
func SeedAdmin() error {
	db := DB()
	name := getEnv("ADMIN_NAME", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if name == "" || pass == "" {
		log.Println("⚠️ skip seeding admin: missing ADMIN_NAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.Admin{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		log.Println("ℹ️ admin already exists:", name)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.Admin{
		Name:        name,
		Description: "Seeded restaurant",
		Password:    string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	return SeedMenu(admin.ID)
}

// A couple of starter items so the catalog is not empty on a fresh DB.
func SeedMenu(adminID uint) error {
	db := DB()

	items := []entity.FoodItem{
		{Name: "Masala Dosa", Description: "Crispy dosa with potato filling", Price: 8000, Available: true, AdminID: adminID},
		{Name: "Veg Biryani", Description: "Aromatic rice with vegetables", Price: 12000, Available: true, AdminID: adminID},
		{Name: "Filter Coffee", Description: "South Indian filter coffee", Price: 3000, Available: true, AdminID: adminID},
	}
	for _, it := range items {
		var exist entity.FoodItem
		err := db.Where("admin_id = ? AND name = ?", adminID, it.Name).First(&exist).Error
		if err == nil {
			continue
		}
		if err := db.Create(&it).Error; err != nil {
			return err
		}
	}
	return nil
}
