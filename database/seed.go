package database

import (
	"log"

	"github.com/akshad110/campus-eats-sub000/constants"
	"github.com/akshad110/campus-eats-sub000/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("campus123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		hashPassword = "campus123"
	}

	shops := []model.Shop{
		{Name: "Campus Canteen", Location: "Main Block", UpiId: "canteen@upi", OpensAt: "08:00", ClosesAt: "20:00"},
		{Name: "Juice Junction", Location: "Sports Complex", UpiId: "juice@upi", OpensAt: "09:00", ClosesAt: "18:00"},
	}

	for i := range shops {
		shops[i].Slug = slug.Make(shops[i].Name)
		if err := db.Where(model.Shop{Slug: shops[i].Slug}).FirstOrCreate(&shops[i]).Error; err != nil {
			log.Println("failed to seed shop:", shops[i].Name, "error:", err)
		}
	}

	accounts := []model.Account{
		{Username: "admin", Password: hashPassword, Active: true, Role: constants.ROLE_ADMIN},
		{Username: "canteen", Password: hashPassword, Active: true, Role: constants.ROLE_OWNER, ShopId: &shops[0].ID},
		{Username: "juice", Password: hashPassword, Active: true, Role: constants.ROLE_OWNER, ShopId: &shops[1].ID},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed account:", account.Username, "error:", err)
		}
	}

	menuItems := []model.MenuItem{
		{ShopId: shops[0].ID, Name: "Veg Thali", Category: "meals", Price: 80, IsVeg: true, Available: true},
		{ShopId: shops[0].ID, Name: "Masala Dosa", Category: "meals", Price: 60, IsVeg: true, Available: true},
		{ShopId: shops[0].ID, Name: "Samosa", Category: "snacks", Price: 15, IsVeg: true, Available: true},
		{ShopId: shops[1].ID, Name: "Mango Shake", Category: "beverages", Price: 50, IsVeg: true, Available: true},
		{ShopId: shops[1].ID, Name: "Cold Coffee", Category: "beverages", Price: 40, IsVeg: true, Available: true},
	}

	for _, item := range menuItems {
		if err := db.Where(model.MenuItem{ShopId: item.ShopId, Name: item.Name}).FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed menu item:", item.Name, "error:", err)
		}
	}
}
