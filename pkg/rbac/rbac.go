// Package rbac maps roles to the permissions they hold.
//
//	policy := rbac.New().
//	    Grant("Administrator", rbac.All).
//	    Grant("Cashier", "orders", "reports").
//	    Grant(rbac.AnyRole, "orders")
//
//	if err := policy.Check(role, "reports"); err != nil { ... }
package rbac

import (
	"errors"
	"fmt"
)

const (
	// All grants every permission.
	All = "*"
	// AnyRole applies a grant to every role, including unknown ones.
	AnyRole = "*"
)

// ErrForbidden is wrapped by every error Check returns.
var ErrForbidden = errors.New("forbidden")

// DeniedError names the role and the permission it lacks.
type DeniedError struct {
	Role       string
	Permission string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("forbidden: role %q may not use %s", e.Role, e.Permission)
}

func (e *DeniedError) Unwrap() error { return ErrForbidden }

// Policy is an immutable-after-boot grant table.
type Policy struct {
	grants map[string]map[string]bool
}

func New() *Policy {
	return &Policy{grants: map[string]map[string]bool{}}
}

// Grant adds permissions to role and returns the policy for chaining.
func (p *Policy) Grant(role string, permissions ...string) *Policy {
	set, ok := p.grants[role]
	if !ok {
		set = map[string]bool{}
		p.grants[role] = set
	}
	for _, perm := range permissions {
		set[perm] = true
	}
	return p
}

// Allows reports whether role holds permission, directly or through AnyRole.
func (p *Policy) Allows(role, permission string) bool {
	for _, r := range []string{role, AnyRole} {
		set := p.grants[r]
		if set[All] || set[permission] {
			return true
		}
	}
	return false
}

// Check is Allows as an error.
func (p *Policy) Check(role, permission string) error {
	if p.Allows(role, permission) {
		return nil
	}
	return &DeniedError{Role: role, Permission: permission}
}
