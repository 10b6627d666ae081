package models

// Dish is a sellable menu item.
type Dish struct {
	ID    uint    `gorm:"primaryKey"                json:"id"`
	Name  string  `gorm:"size:255;not null;index"   json:"name"`
	Price float64 `gorm:"not null;default:0"        json:"price"`
}

// Ingredient is a stock-tracked raw material. Quantity is the ledger value.
type Ingredient struct {
	ID       uint    `gorm:"primaryKey"              json:"id"`
	Name     string  `gorm:"size:255;not null;index" json:"name"`
	Quantity float64 `gorm:"not null;default:0"      json:"quantity"`
	Unit     string  `gorm:"size:20;not null"        json:"unit"`
}

// Recipe is one bill-of-materials line: how much of an ingredient a single
// unit of the dish consumes.
type Recipe struct {
	DishID       uint    `gorm:"primaryKey;autoIncrement:false" json:"dish_id"`
	IngredientID uint    `gorm:"primaryKey;autoIncrement:false" json:"ingredient_id"`
	Amount       float64 `gorm:"not null"                       json:"amount"`

	Dish       Dish       `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Ingredient Ingredient `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
