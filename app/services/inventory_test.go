package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/pkg/testkit"
)

func inventory(f *fixture) *InventoryService {
	return NewInventoryService(f.db, f.audit, f.bus, InventoryOptions{LowThreshold: 10, WarnThreshold: 20})
}

func TestApplyEditsOverwritesInsertsAndDeletes(t *testing.T) {
	f := newFixture(t)
	k := newKitchen(t, f.db)
	ctx := context.Background()

	levels, err := inventory(f).ApplyEdits(ctx, "admin", []StockEdit{
		{ID: k.beef.ID, Name: " Ground beef ", Quantity: 12.5, Unit: "kg"},
		{ID: 0, Name: "Cheese", Quantity: 4, Unit: "kg"},
		{ID: k.salt.ID, Delete: true},
	})
	require.NoError(t, err)
	require.Len(t, levels, 2)

	all, err := inventory(f).Levels(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Ground beef", all[0].Name)
	assert.Equal(t, 12.5, all[0].Quantity)
	assert.Equal(t, "Cheese", all[3].Name)

	var recipes int64
	require.NoError(t, f.db.Model(&models.Recipe{}).Where(map[string]any{"ingredient_id": k.salt.ID}).Count(&recipes).Error)
	assert.Zero(t, recipes)

	assert.EqualValues(t, 1, f.auditCount(t, ActionStockUpdated))
	var entry models.AuditLogEntry
	require.NoError(t, f.db.Where(map[string]any{"action": ActionStockUpdated}).First(&entry).Error)
	assert.Equal(t, "Updated 3 ingredients", entry.Details)

	changed := f.events(EventStockChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, []uint{k.salt.ID}, changed[0].(StockChanged).Deleted)
}

func TestApplyEditsRejectsBadFields(t *testing.T) {
	f := newFixture(t)
	k := newKitchen(t, f.db)

	_, err := inventory(f).ApplyEdits(context.Background(), "admin", []StockEdit{
		{ID: k.beef.ID, Name: "Beef", Quantity: -1, Unit: "kg"},
		{ID: k.bun.ID, Name: "", Quantity: 1, Unit: "pcs"},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "edits[0].quantity")
	assert.Contains(t, ve.Fields, "edits[1].name")
	assert.Equal(t, 10.0, testkit.Quantity(t, f.db, k.beef.ID))
}

func TestApplyEditsUnknownIDRollsBack(t *testing.T) {
	f := newFixture(t)
	k := newKitchen(t, f.db)

	_, err := inventory(f).ApplyEdits(context.Background(), "admin", []StockEdit{
		{ID: k.beef.ID, Name: "Beef", Quantity: 99, Unit: "kg"},
		{ID: 404, Name: "Ghost", Quantity: 1, Unit: "kg"},
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 10.0, testkit.Quantity(t, f.db, k.beef.ID))
	assert.Zero(t, f.auditCount(t, ActionStockUpdated))
}

func TestStockReportLevels(t *testing.T) {
	f := newFixture(t)
	testkit.Ingredient(t, f.db, "Milk", 5, "l")
	testkit.Ingredient(t, f.db, "Sugar", 15, "kg")
	testkit.Ingredient(t, f.db, "Flour", 20, "kg")

	rows, err := inventory(f).Report(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, LevelLow, rows[0].Level)
	assert.Equal(t, LevelWarning, rows[1].Level)
	assert.Equal(t, LevelOK, rows[2].Level)
}
