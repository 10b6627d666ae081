package services

import (
	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/pkg/rbac"
)

// Permissions checked by the commands.
const (
	PermOrders  = "orders"
	PermReports = "reports"
	PermMenu    = "menu"
	PermStock   = "stock"
	PermRecipes = "recipes"
	PermUsers   = "users"
	PermAudit   = "audit"
	PermBackup  = "backup"
)

// AccessPolicy: administrators do everything, cashiers also see reports,
// every signed-in operator takes orders.
var AccessPolicy = rbac.New().
	Grant(models.RoleAdministrator, rbac.All).
	Grant(models.RoleCashier, PermReports).
	Grant(rbac.AnyRole, PermOrders)

// Principal is an authenticated operator.
type Principal struct {
	Login string
	Role  string
}

// Can reports whether p holds permission.
func (p Principal) Can(permission string) bool {
	return AccessPolicy.Allows(p.Role, permission)
}

// Authorize returns an error wrapping ErrForbidden when p lacks permission.
func (p Principal) Authorize(permission string) error {
	return AccessPolicy.Check(p.Role, permission)
}
