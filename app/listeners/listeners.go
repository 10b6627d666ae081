// Package listeners subscribes the metrics collectors to domain events.
package listeners

import (
	"context"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/services"
	"github.com/shashiranjanraj/cafedesk/pkg/event"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
)

// Register wires every listener onto bus.
func Register(bus *event.Bus) {
	bus.Listen(services.EventOrderConfirmed, orderConfirmed)
	bus.Listen(services.EventOrderRejected, orderRejected)
	bus.Listen(services.EventOrderStatusChanged, statusChanged)
	bus.Listen(services.EventStockChanged, stockChanged)
	bus.Listen(services.EventRecipeSaved, recipeSaved)
	bus.Listen(services.EventMenuChanged, menuChanged)
}

func orderConfirmed(_ context.Context, payload any) {
	e, ok := payload.(services.OrderConfirmed)
	if !ok {
		return
	}
	metrics.OrdersConfirmed.Inc()
	metrics.OrderRevenue.Add(e.Total)
	SetStockLevels(e.Stock)
}

func orderRejected(_ context.Context, payload any) {
	if e, ok := payload.(services.OrderRejected); ok {
		metrics.OrdersRejected.WithLabelValues(e.Reason).Inc()
	}
}

func statusChanged(_ context.Context, payload any) {
	e, ok := payload.(services.OrderStatusChanged)
	if !ok {
		return
	}
	metrics.OrderStatusChanges.WithLabelValues(string(e.To)).Inc()
	SetStockLevels(e.Restored)
}

func stockChanged(_ context.Context, payload any) {
	if e, ok := payload.(services.StockChanged); ok {
		SetStockLevels(e.Levels)
	}
}

func recipeSaved(ctx context.Context, payload any) {
	if e, ok := payload.(services.RecipeSaved); ok {
		logger.WithCtx(ctx).Debug("recipe saved", "user", e.User, "dish_id", e.DishID, "rows", e.Rows)
	}
}

func menuChanged(ctx context.Context, payload any) {
	if e, ok := payload.(services.MenuChanged); ok {
		logger.WithCtx(ctx).Debug("menu changed", "user", e.User, "action", e.Action, "dish_id", e.DishID)
	}
}

// SetStockLevels updates the stock gauge for every ingredient in levels.
func SetStockLevels(levels []models.Ingredient) {
	for _, ing := range levels {
		metrics.StockLevel.WithLabelValues(ing.Name, ing.Unit).Set(ing.Quantity)
	}
}
