package models

import (
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusCreated   OrderStatus = "Created"
	StatusPaid      OrderStatus = "Paid"
	StatusCancelled OrderStatus = "Cancelled"
)

// transitions lists every allowed move. Paid and Cancelled are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusCreated: {StatusPaid, StatusCancelled},
}

// CanTransition reports whether an order in s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether nothing can leave s.
func (s OrderStatus) IsTerminal() bool { return len(transitions[s]) == 0 }

// ParseOrderStatus accepts a status name in any letter case.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range []OrderStatus{StatusCreated, StatusPaid, StatusCancelled} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// Order is a customer transaction. Total is fixed when the order is created.
type Order struct {
	ID        uint        `gorm:"primaryKey"                    json:"id"`
	User      string      `gorm:"column:user;size:100;not null;index" json:"user"`
	CreatedAt time.Time   `gorm:"not null;index"                json:"created_at"`
	Total     float64     `gorm:"not null"                      json:"total"`
	Status    OrderStatus `gorm:"size:20;not null;index"        json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem is one dish line of an order.
type OrderItem struct {
	OrderID  uint `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	DishID   uint `gorm:"primaryKey;autoIncrement:false" json:"dish_id"`
	Quantity int  `gorm:"not null"                       json:"quantity"`

	Dish Dish `json:"dish"`
}
