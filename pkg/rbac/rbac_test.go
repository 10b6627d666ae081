package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/cafedesk/pkg/rbac"
)

func TestPolicyMatrix(t *testing.T) {
	p := rbac.New().
		Grant("Administrator", rbac.All).
		Grant("Cashier", "reports").
		Grant(rbac.AnyRole, "orders")

	cases := []struct {
		role, perm string
		allowed    bool
	}{
		{"Administrator", "menu", true},
		{"Administrator", "orders", true},
		{"Cashier", "reports", true},
		{"Cashier", "orders", true},
		{"Cashier", "menu", false},
		{"Waiter", "orders", true},
		{"Waiter", "reports", false},
		{"", "orders", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, p.Allows(tc.role, tc.perm), "%s/%s", tc.role, tc.perm)
	}
}

func TestCheckWrapsForbidden(t *testing.T) {
	p := rbac.New().Grant("Administrator", rbac.All)

	assert.NoError(t, p.Check("Administrator", "users"))

	err := p.Check("Cashier", "users")
	assert.ErrorIs(t, err, rbac.ErrForbidden)

	var denied *rbac.DeniedError
	if assert.ErrorAs(t, err, &denied) {
		assert.Equal(t, "Cashier", denied.Role)
		assert.Equal(t, "users", denied.Permission)
	}
}
