package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/pkg/rbac"
)

// Sentinel errors. Match them with errors.Is; the typed errors below wrap
// the matching sentinel.
var (
	ErrValidation           = errors.New("validation failed")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid login or password")
	ErrNotFound             = errors.New("not found")
	ErrPersistence          = errors.New("persistence failure")
	ErrForbidden            = rbac.ErrForbidden
)

// ValidationError carries per-field messages. Reason, when set, is a more
// specific sentinel such as ErrEmptyOrder.
type ValidationError struct {
	Reason error
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Reason != nil {
		b.WriteString(e.Reason.Error())
	} else {
		b.WriteString(ErrValidation.Error())
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i == 0 {
				b.WriteString(": ")
			} else {
				b.WriteString("; ")
			}
			b.WriteString(e.Fields[k])
		}
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	if e.Reason != nil {
		return []error{ErrValidation, e.Reason}
	}
	return []error{ErrValidation}
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// InsufficientStockError names the first ingredient an order cannot cover.
type InsufficientStockError struct {
	IngredientID uint
	Ingredient   string
	Unit         string
	Required     float64
	Available    float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: required %.3f %s, available %.3f %s",
		e.Ingredient, e.Required, e.Unit, e.Available, e.Unit)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Shortfall is how much more stock the order needed.
func (e *InsufficientStockError) Shortfall() float64 { return e.Required - e.Available }

// NotFoundError is returned for unknown dish, ingredient, order or user ids.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(entity string, key any) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// PersistenceError wraps a storage-layer failure. The enclosing transaction
// has been rolled back when a service returns one.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// persist leaves domain errors untouched and wraps everything else as a
// PersistenceError for op.
func persist(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		ve *ValidationError
		se *InsufficientStockError
		nf *NotFoundError
		pe *PersistenceError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &se), errors.As(err, &nf), errors.As(err, &pe),
		errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrForbidden), errors.Is(err, ErrAuthenticationFailed):
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// lookup maps gorm.ErrRecordNotFound to a NotFoundError and passes other
// errors to persist.
func lookup(entity string, key any, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, key)
	}
	return persist(op, err)
}
