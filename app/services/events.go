package services

import "github.com/shashiranjanraj/cafedesk/app/models"

// Events fired on the bus after the owning transaction commits.
const (
	EventOrderConfirmed     = "order.confirmed"
	EventOrderRejected      = "order.rejected"
	EventOrderStatusChanged = "order.status_changed"
	EventStockChanged       = "stock.changed"
	EventRecipeSaved        = "recipe.saved"
	EventMenuChanged        = "menu.changed"
)

// OrderConfirmed is the payload of EventOrderConfirmed.
type OrderConfirmed struct {
	OrderID uint
	User    string
	Total   float64
	Items   []models.OrderItem
	// Stock holds the ledger rows touched by the order, after deduction.
	Stock []models.Ingredient
}

// OrderRejected is the payload of EventOrderRejected.
type OrderRejected struct {
	User   string
	Reason string // "empty" | "validation" | "not_found" | "insufficient_stock" | "persistence"
	Err    error
}

// OrderStatusChanged is the payload of EventOrderStatusChanged.
type OrderStatusChanged struct {
	OrderID uint
	User    string
	From    models.OrderStatus
	To      models.OrderStatus
	// Restored lists ingredients put back on cancel, when enabled.
	Restored []models.Ingredient
}

// StockChanged is the payload of EventStockChanged.
type StockChanged struct {
	User    string
	Levels  []models.Ingredient
	Deleted []uint
}

// RecipeSaved is the payload of EventRecipeSaved.
type RecipeSaved struct {
	User   string
	DishID uint
	Rows   int
}

// MenuChanged is the payload of EventMenuChanged.
type MenuChanged struct {
	User   string
	Action string
	DishID uint
}
