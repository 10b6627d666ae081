package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
)

// RecipeRepository handles the dish → ingredient bill of materials.
type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// ForDish returns the recipe rows of one dish with their ingredient loaded.
func (r *RecipeRepository) ForDish(dishID uint) ([]models.Recipe, error) {
	var rows []models.Recipe
	err := r.db.Preload("Ingredient").
		Where(map[string]any{"dish_id": dishID}).
		Order("ingredient_id").
		Find(&rows).Error
	return rows, err
}

// ForDishes returns the recipe rows of every dish in ids.
func (r *RecipeRepository) ForDishes(ids []uint) ([]models.Recipe, error) {
	var rows []models.Recipe
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.db.Where("dish_id IN ?", ids).Order("dish_id").Order("ingredient_id").Find(&rows).Error
	return rows, err
}

// Replace deletes every row of dishID and inserts rows. Run it inside a
// transaction.
func (r *RecipeRepository) Replace(dishID uint, rows []models.Recipe) error {
	if err := r.db.Where(map[string]any{"dish_id": dishID}).Delete(&models.Recipe{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.Omit("Dish", "Ingredient").Create(&rows).Error
}
