package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/app/models"
)

func TestSalesReport(t *testing.T) {
	f := newFixture(t)
	k := newKitchen(t, f.db)
	ctx := context.Background()
	orders := f.orders(false)

	paid, err := orders.Confirm(ctx, "cashier", []OrderLine{{DishID: k.burger.ID, Quantity: 2}})
	require.NoError(t, err)
	cancelled, err := orders.Confirm(ctx, "cashier", []OrderLine{{DishID: k.fries.ID, Quantity: 5}})
	require.NoError(t, err)
	_, err = orders.Confirm(ctx, "cashier", []OrderLine{{DishID: k.fries.ID, Quantity: 1}, {DishID: k.burger.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = orders.SetStatus(ctx, "admin", paid, models.StatusPaid)
	require.NoError(t, err)
	_, err = orders.SetStatus(ctx, "admin", cancelled, models.StatusCancelled)
	require.NoError(t, err)

	report, err := NewReportService(f.db).Sales(ctx, nil, nil)
	require.NoError(t, err)

	assert.Len(t, report.Orders, 3)
	assert.Equal(t, []StatusTotal{
		{Status: models.StatusCreated, Orders: 1, Revenue: 370},
		{Status: models.StatusPaid, Orders: 1, Revenue: 500},
		{Status: models.StatusCancelled, Orders: 1, Revenue: 600},
	}, report.ByStatus)
	assert.Equal(t, 870.0, report.Revenue)

	require.Len(t, report.Dishes, 2)
	assert.Equal(t, DishTotal{DishID: k.burger.ID, Dish: "Burger", Quantity: 3, Revenue: 750}, report.Dishes[0])
	assert.Equal(t, DishTotal{DishID: k.fries.ID, Dish: "Fries", Quantity: 1, Revenue: 120}, report.Dishes[1])
}

func TestSalesReportRange(t *testing.T) {
	f := newFixture(t)
	k := newKitchen(t, f.db)
	ctx := context.Background()

	_, err := f.orders(false).Confirm(ctx, "cashier", []OrderLine{{DishID: k.burger.ID, Quantity: 1}})
	require.NoError(t, err)

	today := time.Now()
	report, err := NewReportService(f.db).Sales(ctx, &today, &today)
	require.NoError(t, err)
	assert.Len(t, report.Orders, 1)

	yesterday := today.AddDate(0, 0, -1)
	report, err = NewReportService(f.db).Sales(ctx, &yesterday, &yesterday)
	require.NoError(t, err)
	assert.Empty(t, report.Orders)
	assert.Zero(t, report.Revenue)

	_, err = NewReportService(f.db).Sales(ctx, &today, &yesterday)
	assert.ErrorIs(t, err, ErrValidation)
}
