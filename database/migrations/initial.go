package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_dishes_table", &CreateDishesTable{})
	migration.Register("20260101000002_create_ingredients_table", &CreateIngredientsTable{})
	migration.Register("20260101000003_create_recipes_table", &CreateRecipesTable{})
	migration.Register("20260101000004_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260101000005_create_order_items_table", &CreateOrderItemsTable{})
	migration.Register("20260101000006_create_audit_log_table", &CreateAuditLogTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.User{}) }
func (m *CreateUsersTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("users") }

// -------- 0002: dishes --------

type CreateDishesTable struct{}

func (m *CreateDishesTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.Dish{}) }
func (m *CreateDishesTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("dishes") }

// -------- 0003: ingredients --------

type CreateIngredientsTable struct{}

func (m *CreateIngredientsTable) Up(db *gorm.DB) error { return db.AutoMigrate(&models.Ingredient{}) }
func (m *CreateIngredientsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("ingredients")
}

// -------- 0004: recipes --------

// Recipes cascade from both dishes and ingredients.
type CreateRecipesTable struct{}

func (m *CreateRecipesTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.Recipe{}) }
func (m *CreateRecipesTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("recipes") }

// -------- 0005: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.Order{}) }
func (m *CreateOrdersTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("orders") }

// -------- 0006: order items --------

type CreateOrderItemsTable struct{}

func (m *CreateOrderItemsTable) Up(db *gorm.DB) error { return db.AutoMigrate(&models.OrderItem{}) }
func (m *CreateOrderItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items")
}

// -------- 0007: audit log --------

type CreateAuditLogTable struct{}

func (m *CreateAuditLogTable) Up(db *gorm.DB) error { return db.AutoMigrate(&models.AuditLogEntry{}) }
func (m *CreateAuditLogTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("audit_log")
}
