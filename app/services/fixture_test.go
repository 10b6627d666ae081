package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/pkg/event"
	"github.com/shashiranjanraj/cafedesk/pkg/testkit"
)

type fixture struct {
	db    *gorm.DB
	bus   *event.Bus
	audit *AuditRecorder

	mu    sync.Mutex
	fired map[string][]any
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testkit.DB(t)
	f := &fixture{db: db, bus: event.New(), audit: NewAuditRecorder(db), fired: map[string][]any{}}
	for _, name := range []string{
		EventOrderConfirmed, EventOrderRejected, EventOrderStatusChanged,
		EventStockChanged, EventRecipeSaved, EventMenuChanged,
	} {
		name := name
		f.bus.Listen(name, func(_ context.Context, payload any) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.fired[name] = append(f.fired[name], payload)
		})
	}
	return f
}

func (f *fixture) events(name string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fired[name]
}

func (f *fixture) orders(restore bool) *OrderService {
	return NewOrderService(f.db, f.audit, f.bus, OrderOptions{RestoreStockOnCancel: restore})
}

func (f *fixture) auditCount(t *testing.T, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.AuditLogEntry{}).Where(map[string]any{"action": action}).Count(&n).Error)
	return n
}

// kitchen is a small menu: burgers and fries share salt.
type kitchen struct {
	burger, fries           models.Dish
	beef, bun, potato, salt models.Ingredient
}

func newKitchen(t *testing.T, db *gorm.DB) kitchen {
	t.Helper()
	k := kitchen{
		burger: testkit.Dish(t, db, "Burger", 250),
		fries:  testkit.Dish(t, db, "Fries", 120),
		beef:   testkit.Ingredient(t, db, "Beef", 10, "kg"),
		bun:    testkit.Ingredient(t, db, "Bun", 50, "pcs"),
		potato: testkit.Ingredient(t, db, "Potato", 20, "kg"),
		salt:   testkit.Ingredient(t, db, "Salt", 1, "kg"),
	}
	testkit.Recipe(t, db, k.burger.ID, k.beef.ID, 0.2)
	testkit.Recipe(t, db, k.burger.ID, k.bun.ID, 1)
	testkit.Recipe(t, db, k.burger.ID, k.salt.ID, 0.01)
	testkit.Recipe(t, db, k.fries.ID, k.potato.ID, 0.3)
	testkit.Recipe(t, db, k.fries.ID, k.salt.ID, 0.01)
	return k
}
