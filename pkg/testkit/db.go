// Package testkit holds the database fixtures shared by the package tests.
//
// Every test gets its own named in-memory SQLite database with the full
// schema applied:
//
//	db := testkit.DB(t)
//	beef := testkit.Ingredient(t, db, "Beef", 10, "kg")
package testkit

import (
	"fmt"
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	_ "github.com/shashiranjanraj/cafedesk/database/migrations"
	"github.com/shashiranjanraj/cafedesk/database/seeders"
	"github.com/shashiranjanraj/cafedesk/pkg/auth"
	"github.com/shashiranjanraj/cafedesk/pkg/database"
	"github.com/shashiranjanraj/cafedesk/pkg/migration"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// DSN returns the in-memory SQLite DSN used for t.
func DSN(t testing.TB) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", unsafeName.ReplaceAllString(t.Name(), "_"))
}

// DB opens a migrated in-memory database that is closed when t ends.
func DB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", DSN(t))
	require.NoError(t, err, "testkit: open database")
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = migration.New(db, io.Discard).Run()
	require.NoError(t, err, "testkit: migrate")

	return db
}

// Seeded is DB plus the default seed data.
func Seeded(t testing.TB) *gorm.DB {
	t.Helper()
	db := DB(t)
	require.NoError(t, seeders.RunAll(db, io.Discard), "testkit: seed")
	return db
}

// ─── Fixtures ────────────────────────────────────────────────────────────────

func Dish(t testing.TB, db *gorm.DB, name string, price float64) models.Dish {
	t.Helper()
	d := models.Dish{Name: name, Price: price}
	require.NoError(t, db.Create(&d).Error)
	return d
}

func Ingredient(t testing.TB, db *gorm.DB, name string, qty float64, unit string) models.Ingredient {
	t.Helper()
	ing := models.Ingredient{Name: name, Quantity: qty, Unit: unit}
	require.NoError(t, db.Create(&ing).Error)
	return ing
}

func Recipe(t testing.TB, db *gorm.DB, dishID, ingredientID uint, amount float64) {
	t.Helper()
	r := models.Recipe{DishID: dishID, IngredientID: ingredientID, Amount: amount}
	require.NoError(t, db.Omit("Dish", "Ingredient").Create(&r).Error)
}

// User creates an account. The cost is the bcrypt minimum to keep tests fast.
func User(t testing.TB, db *gorm.DB, login, password, role string) models.User {
	t.Helper()
	hash, err := auth.HashPasswordCost(password, auth.MinCost)
	require.NoError(t, err)
	u := models.User{Login: login, PasswordHash: hash, Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// Quantity reads an ingredient's current stock.
func Quantity(t testing.TB, db *gorm.DB, ingredientID uint) float64 {
	t.Helper()
	var ing models.Ingredient
	require.NoError(t, db.First(&ing, ingredientID).Error)
	return ing.Quantity
}

// Count returns the number of rows in model's table.
func Count(t testing.TB, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
