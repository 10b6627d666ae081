package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/cafedesk/app/models"
)

// OrderRepository handles orders and their line items.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and then its items. Run it inside a transaction.
func (r *OrderRepository) Create(order *models.Order) error {
	items := order.Items
	order.Items = nil
	if err := r.db.Omit(clause.Associations).Create(order).Error; err != nil {
		order.Items = items
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items
	if len(items) == 0 {
		return nil
	}
	return r.db.Omit(clause.Associations).Create(&items).Error
}

// Find loads one order with its items and their dishes.
func (r *OrderRepository) Find(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("dish_id") }).
		Preload("Items.Dish").
		First(&order, id).Error
	return order, err
}

// All returns every order newest first, with items and dishes.
func (r *OrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("dish_id") }).
		Preload("Items.Dish").
		Order("created_at desc").Order("id desc").
		Find(&orders).Error
	return orders, err
}

// SetStatus writes status only when the order is still in from, so two
// racing transitions cannot both apply. It reports whether a row changed.
func (r *OrderRepository) SetStatus(id uint, from, to models.OrderStatus) (bool, error) {
	res := r.db.Model(&models.Order{}).
		Where(map[string]any{"id": id, "status": string(from)}).
		Update("status", string(to))
	return res.RowsAffected == 1, res.Error
}
