package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
)

// ErrStockExhausted is returned by Decrement when the ledger holds less than
// the requested amount.
var ErrStockExhausted = errors.New("repositories: stock exhausted")

// StockEpsilon absorbs binary rounding when comparing float quantities, so
// 0.1 * 3 of an ingredient can be taken from a ledger holding 0.3.
const StockEpsilon = 1e-9

// IngredientRepository is the inventory ledger.
type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// All returns every ingredient ordered by id.
func (r *IngredientRepository) All() ([]models.Ingredient, error) {
	var out []models.Ingredient
	err := r.db.Order("id").Find(&out).Error
	return out, err
}

func (r *IngredientRepository) Find(id uint) (models.Ingredient, error) {
	var ing models.Ingredient
	err := r.db.First(&ing, id).Error
	return ing, err
}

// FindMany loads the given ids ordered by id.
func (r *IngredientRepository) FindMany(ids []uint) ([]models.Ingredient, error) {
	var out []models.Ingredient
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.Where("id IN ?", ids).Order("id").Find(&out).Error
	return out, err
}

func (r *IngredientRepository) Create(ing *models.Ingredient) error {
	return r.db.Create(ing).Error
}

// Overwrite replaces name, quantity and unit of an existing ingredient.
func (r *IngredientRepository) Overwrite(ing models.Ingredient) (int64, error) {
	res := r.db.Model(&models.Ingredient{ID: ing.ID}).
		Select("name", "quantity", "unit").
		Updates(map[string]any{"name": ing.Name, "quantity": ing.Quantity, "unit": ing.Unit})
	return res.RowsAffected, res.Error
}

// Delete removes the ingredient and every recipe row using it.
func (r *IngredientRepository) Delete(id uint) (int64, error) {
	if err := r.db.Where(map[string]any{"ingredient_id": id}).Delete(&models.Recipe{}).Error; err != nil {
		return 0, err
	}
	res := r.db.Delete(&models.Ingredient{}, id)
	return res.RowsAffected, res.Error
}

// Decrement takes amount off the ledger and returns the new quantity. It
// refuses to go below zero; rounding dust below zero is clamped.
func (r *IngredientRepository) Decrement(id uint, amount float64) (float64, error) {
	ing, err := r.Find(id)
	if err != nil {
		return 0, err
	}
	if ing.Quantity+StockEpsilon < amount {
		return ing.Quantity, ErrStockExhausted
	}
	remaining := ing.Quantity - amount
	if remaining < 0 {
		remaining = 0
	}
	return remaining, r.setQuantity(id, remaining)
}

// Increment puts amount back on the ledger and returns the new quantity.
func (r *IngredientRepository) Increment(id uint, amount float64) (float64, error) {
	ing, err := r.Find(id)
	if err != nil {
		return 0, err
	}
	total := ing.Quantity + amount
	return total, r.setQuantity(id, total)
}

func (r *IngredientRepository) setQuantity(id uint, qty float64) error {
	return r.db.Model(&models.Ingredient{ID: id}).Update("quantity", qty).Error
}
