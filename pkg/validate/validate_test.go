package validate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/cafedesk/pkg/validate"
)

type userInput struct {
	Login    string `json:"login"    validate:"required,alpha_dash,min=2,max=20"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role"     validate:"required,in=Administrator,Cashier,Waiter,max=50"`
	Note     string `json:"note"     validate:"nullable,max=5"`
}

type lineInput struct {
	DishID   uint    `json:"dish_id"  validate:"required"`
	Quantity int     `json:"quantity" validate:"gt=0"`
	Amount   float64 `json:"amount"   validate:"gte=0,lte=1000"`
	Share    float64 `json:"share"    validate:"between=0,1"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(userInput{Login: "anna_k", Password: "secret", Role: "Cashier"})
	assert.False(t, validate.HasErrors(errs), "%v", errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(userInput{})
	assert.Contains(t, errs, "login")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "role")
	assert.NotContains(t, errs, "note")
}

func TestInKeepsMultiValueParam(t *testing.T) {
	errs := validate.Struct(userInput{Login: "anna", Password: "secret", Role: "Waiter"})
	assert.NotContains(t, errs, "role")

	errs = validate.Struct(userInput{Login: "anna", Password: "secret", Role: "Chef"})
	assert.Equal(t, "The selected role is invalid.", errs["role"])
}

func TestStringLengthRules(t *testing.T) {
	errs := validate.Struct(userInput{Login: "a", Password: "abc", Role: "Cashier", Note: "too long"})
	assert.Equal(t, "The login must be at least 2 characters.", errs["login"])
	assert.Equal(t, "The password must be at least 4 characters.", errs["password"])
	assert.Equal(t, "The note must not exceed 5 characters.", errs["note"])

	errs = validate.Struct(userInput{Login: "anna k", Password: "secret", Role: "Cashier"})
	assert.Contains(t, errs, "login")
}

func TestNumericRules(t *testing.T) {
	errs := validate.Struct(lineInput{DishID: 1, Quantity: 2, Amount: 0, Share: 0.5})
	assert.Empty(t, errs)

	errs = validate.Struct(lineInput{DishID: 0, Quantity: 0, Amount: -1, Share: 2})
	assert.Equal(t, "The dish_id field is required.", errs["dish_id"])
	assert.Equal(t, "The quantity must be greater than 0.", errs["quantity"])
	assert.Equal(t, "The amount must be greater than or equal to 0.", errs["amount"])
	assert.Equal(t, "The share must be between 0 and 1.", errs["share"])
}

func TestNaNFailsNumericRules(t *testing.T) {
	errs := validate.Struct(lineInput{DishID: 1, Quantity: 1, Amount: math.NaN(), Share: 0})
	assert.Equal(t, "The amount field must be a number.", errs["amount"])
}
