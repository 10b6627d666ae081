package seeders

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("dishes", SeedDishes)
	Register("ingredients", SeedIngredients)
	Register("recipes", SeedRecipes)
}

// SeedUsers provisions the initial administrator (admin / admin).
func SeedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where(&models.User{Login: "admin"}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin")
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return db.Create(&models.User{Login: "admin", PasswordHash: hash, Role: models.RoleAdministrator}).Error
}

var seedDishes = []models.Dish{
	{Name: "Borscht", Price: 250},
	{Name: "Beef steak", Price: 450},
	{Name: "Caesar salad", Price: 320},
	{Name: "Latte", Price: 180},
	{Name: "Cheesecake", Price: 220},
}

func SeedDishes(db *gorm.DB) error {
	for _, d := range seedDishes {
		d := d
		if err := db.Where(&models.Dish{Name: d.Name}).FirstOrCreate(&d).Error; err != nil {
			return err
		}
	}
	return nil
}

var seedIngredients = []models.Ingredient{
	{Name: "Beef", Quantity: 50, Unit: "kg"},
	{Name: "Potatoes", Quantity: 100, Unit: "kg"},
	{Name: "Beetroot", Quantity: 30, Unit: "kg"},
	{Name: "Iceberg lettuce", Quantity: 20, Unit: "kg"},
	{Name: "Coffee beans", Quantity: 15, Unit: "kg"},
	{Name: "Cream", Quantity: 40, Unit: "l"},
	{Name: "Cheese", Quantity: 25, Unit: "kg"},
	{Name: "Tomatoes", Quantity: 35, Unit: "kg"},
	{Name: "Croutons", Quantity: 10, Unit: "kg"},
	{Name: "Caesar sauce", Quantity: 15, Unit: "l"},
}

func SeedIngredients(db *gorm.DB) error {
	for _, ing := range seedIngredients {
		ing := ing
		if err := db.Where(&models.Ingredient{Name: ing.Name}).FirstOrCreate(&ing).Error; err != nil {
			return err
		}
	}
	return nil
}

type seedRecipe struct {
	dish, ingredient string
	amount           float64
}

var seedRecipes = []seedRecipe{
	{"Borscht", "Potatoes", 0.3},
	{"Borscht", "Beetroot", 0.2},
	{"Beef steak", "Beef", 0.4},
	{"Caesar salad", "Iceberg lettuce", 0.15},
	{"Caesar salad", "Tomatoes", 0.1},
	{"Caesar salad", "Croutons", 0.05},
	{"Caesar salad", "Caesar sauce", 0.03},
	{"Latte", "Coffee beans", 0.02},
	{"Latte", "Cream", 0.1},
	{"Cheesecake", "Cheese", 0.2},
}

// SeedRecipes links the seeded dishes and ingredients by name. It expects
// SeedDishes and SeedIngredients to have run.
func SeedRecipes(db *gorm.DB) error {
	for _, sr := range seedRecipes {
		var dish models.Dish
		if err := db.Where(&models.Dish{Name: sr.dish}).First(&dish).Error; err != nil {
			return fmt.Errorf("dish %q: %w", sr.dish, err)
		}
		var ing models.Ingredient
		if err := db.Where(&models.Ingredient{Name: sr.ingredient}).First(&ing).Error; err != nil {
			return fmt.Errorf("ingredient %q: %w", sr.ingredient, err)
		}

		r := models.Recipe{DishID: dish.ID, IngredientID: ing.ID, Amount: sr.amount}
		err := db.Omit("Dish", "Ingredient").
			Where(&models.Recipe{DishID: r.DishID, IngredientID: r.IngredientID}).
			FirstOrCreate(&r).Error
		if err != nil {
			return err
		}
	}
	return nil
}
