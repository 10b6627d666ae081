package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
)

// DishRepository handles the menu table.
type DishRepository struct {
	db *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{db: db}
}

// All returns the menu ordered by name.
func (r *DishRepository) All() ([]models.Dish, error) {
	var dishes []models.Dish
	err := r.db.Order("name").Order("id").Find(&dishes).Error
	return dishes, err
}

func (r *DishRepository) Find(id uint) (models.Dish, error) {
	var dish models.Dish
	err := r.db.First(&dish, id).Error
	return dish, err
}

// FindMany loads the given ids. Missing ids are simply absent from the result.
func (r *DishRepository) FindMany(ids []uint) ([]models.Dish, error) {
	var dishes []models.Dish
	if len(ids) == 0 {
		return dishes, nil
	}
	err := r.db.Where("id IN ?", ids).Order("id").Find(&dishes).Error
	return dishes, err
}

func (r *DishRepository) Create(dish *models.Dish) error {
	return r.db.Create(dish).Error
}

func (r *DishRepository) Update(dish *models.Dish) error {
	return r.db.Model(dish).Select("name", "price").Updates(dish).Error
}

// InOrders reports whether any order line references the dish.
func (r *DishRepository) InOrders(id uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.OrderItem{}).Where(map[string]any{"dish_id": id}).Count(&n).Error
	return n > 0, err
}

// Delete removes the dish and its recipe rows. Run it inside a transaction.
func (r *DishRepository) Delete(id uint) (int64, error) {
	if err := r.db.Where(map[string]any{"dish_id": id}).Delete(&models.Recipe{}).Error; err != nil {
		return 0, err
	}
	res := r.db.Delete(&models.Dish{}, id)
	return res.RowsAffected, res.Error
}
