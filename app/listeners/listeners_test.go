package listeners

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/services"
	"github.com/shashiranjanraj/cafedesk/pkg/event"
	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
)

func TestOrderEventsFeedMetrics(t *testing.T) {
	bus := event.New()
	Register(bus)
	ctx := context.Background()

	confirmed := testutil.ToFloat64(metrics.OrdersConfirmed)
	revenue := testutil.ToFloat64(metrics.OrderRevenue)
	rejected := testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues("insufficient_stock"))
	paid := testutil.ToFloat64(metrics.OrderStatusChanges.WithLabelValues("Paid"))

	bus.Fire(ctx, services.EventOrderConfirmed, services.OrderConfirmed{
		OrderID: 1,
		Total:   430,
		Stock:   []models.Ingredient{{ID: 1, Name: "Listener beef", Quantity: 7.5, Unit: "kg"}},
	})
	bus.Fire(ctx, services.EventOrderRejected, services.OrderRejected{Reason: "insufficient_stock"})
	bus.Fire(ctx, services.EventOrderStatusChanged, services.OrderStatusChanged{OrderID: 1, To: models.StatusPaid})

	assert.Equal(t, confirmed+1, testutil.ToFloat64(metrics.OrdersConfirmed))
	assert.Equal(t, revenue+430, testutil.ToFloat64(metrics.OrderRevenue))
	assert.Equal(t, rejected+1, testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues("insufficient_stock")))
	assert.Equal(t, paid+1, testutil.ToFloat64(metrics.OrderStatusChanges.WithLabelValues("Paid")))
	assert.Equal(t, 7.5, testutil.ToFloat64(metrics.StockLevel.WithLabelValues("Listener beef", "kg")))
}

func TestStockChangedSetsGauges(t *testing.T) {
	bus := event.New()
	Register(bus)

	bus.Fire(context.Background(), services.EventStockChanged, services.StockChanged{
		Levels: []models.Ingredient{{ID: 9, Name: "Listener milk", Quantity: 3, Unit: "l"}},
	})
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.StockLevel.WithLabelValues("Listener milk", "l")))
}

func TestUnexpectedPayloadIsIgnored(t *testing.T) {
	bus := event.New()
	Register(bus)
	before := testutil.ToFloat64(metrics.OrdersConfirmed)

	bus.Fire(context.Background(), services.EventOrderConfirmed, "not a payload")
	assert.Equal(t, before, testutil.ToFloat64(metrics.OrdersConfirmed))
}
