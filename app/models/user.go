package models

// Roles known to the access policy. Any other role string is a plain
// operator who may only take orders.
const (
	RoleAdministrator = "Administrator"
	RoleCashier       = "Cashier"
)

// User is an operator account.
type User struct {
	ID           uint   `gorm:"primaryKey"                     json:"id"`
	Login        string `gorm:"size:100;uniqueIndex;not null"  json:"login"`
	PasswordHash string `gorm:"size:255;not null"              json:"-"` // bcrypt, never serialised
	Role         string `gorm:"size:50;not null;default:Cashier" json:"role"`
}
