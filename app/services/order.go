package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/repositories"
	"github.com/shashiranjanraj/cafedesk/pkg/collection"
	"github.com/shashiranjanraj/cafedesk/pkg/event"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
	"github.com/shashiranjanraj/cafedesk/pkg/validate"
)

// OrderLine is one requested dish and how many of it.
type OrderLine struct {
	DishID   uint `json:"dish_id"  validate:"required"`
	Quantity int  `json:"quantity" validate:"gt=0"`
}

// OrderOptions tunes order handling.
type OrderOptions struct {
	// RestoreStockOnCancel puts the recipe amounts of a cancelled order back
	// on the ledger. Off by default: cancelled food is assumed wasted.
	RestoreStockOnCancel bool
}

// StatusChange reports the outcome of SetStatus.
type StatusChange struct {
	OrderID uint
	From    models.OrderStatus
	To      models.OrderStatus
	// AlreadyInState is set when the order already had the requested status;
	// nothing was written.
	AlreadyInState bool
	Restored       []models.Ingredient
}

// OrderService confirms orders against the ledger and moves them through
// their lifecycle.
type OrderService struct {
	db    *gorm.DB
	audit *AuditRecorder
	bus   *event.Bus
	opts  OrderOptions
	now   func() time.Time
}

func NewOrderService(db *gorm.DB, audit *AuditRecorder, bus *event.Bus, opts OrderOptions) *OrderService {
	return &OrderService{db: db, audit: audit, bus: bus, opts: opts, now: time.Now}
}

// Confirm validates lines, prices them with the current menu, deducts the
// aggregated recipe amounts from the ledger and stores the order, all in one
// transaction. On any error nothing is persisted.
func (s *OrderService) Confirm(ctx context.Context, user string, lines []OrderLine) (uint, error) {
	defer metrics.ObserveOperation("order.confirm", time.Now())

	merged, err := mergeLines(user, lines)
	if err != nil {
		s.reject(ctx, user, err)
		return 0, err
	}

	var confirmed OrderConfirmed
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dishIDs := collection.Map(merged, func(l OrderLine) uint { return l.DishID })
		found, err := repositories.NewDishRepository(tx).FindMany(dishIDs)
		if err != nil {
			return err
		}
		dishes := collection.KeyBy(found, func(d models.Dish) uint { return d.ID })
		for _, l := range merged {
			if _, ok := dishes[l.DishID]; !ok {
				return notFound("dish", l.DishID)
			}
		}

		total := collection.Sum(merged, func(l OrderLine) float64 {
			return dishes[l.DishID].Price * float64(l.Quantity)
		})

		needed, err := s.requirements(tx, merged)
		if err != nil {
			return err
		}

		ingredients := repositories.NewIngredientRepository(tx)
		stock, err := s.checkStock(ingredients, needed)
		if err != nil {
			return err
		}

		order := models.Order{
			User:      user,
			CreatedAt: s.now().UTC(),
			Total:     total,
			Status:    models.StatusCreated,
			Items: collection.Map(merged, func(l OrderLine) models.OrderItem {
				return models.OrderItem{DishID: l.DishID, Quantity: l.Quantity}
			}),
		}
		if err := repositories.NewOrderRepository(tx).Create(&order); err != nil {
			return err
		}

		for i, ing := range stock {
			remaining, err := ingredients.Decrement(ing.ID, needed[ing.ID])
			if errors.Is(err, repositories.ErrStockExhausted) {
				return shortOf(ing, needed[ing.ID], remaining)
			}
			if err != nil {
				return err
			}
			stock[i].Quantity = remaining
		}

		s.audit.RecordTx(ctx, tx, user, ActionOrderCreated,
			fmt.Sprintf("Order #%d total %.2f (%d lines)", order.ID, total, len(order.Items)))

		confirmed = OrderConfirmed{OrderID: order.ID, User: user, Total: total, Items: order.Items, Stock: stock}
		return nil
	})
	if err != nil {
		err = persist("order.confirm", err)
		s.reject(ctx, user, err)
		return 0, err
	}

	logger.WithCtx(ctx).Info("order confirmed",
		"order_id", confirmed.OrderID, "total", confirmed.Total, "lines", len(confirmed.Items))
	s.bus.Fire(ctx, EventOrderConfirmed, confirmed)
	return confirmed.OrderID, nil
}

// mergeLines validates lines and folds repeated dishes into one line,
// keeping first-appearance order.
func mergeLines(user string, lines []OrderLine) ([]OrderLine, error) {
	if user == "" {
		return nil, invalid("user", "The user field is required.")
	}
	if len(lines) == 0 {
		return nil, &ValidationError{Reason: ErrEmptyOrder}
	}

	fields := map[string]string{}
	var merged []OrderLine
	index := map[uint]int{}
	for i, l := range lines {
		if errs := validate.Struct(l); validate.HasErrors(errs) {
			for k, msg := range errs {
				fields[fmt.Sprintf("items[%d].%s", i, k)] = msg
			}
			continue
		}
		if at, ok := index[l.DishID]; ok {
			if l.Quantity > math.MaxInt-merged[at].Quantity {
				fields[fmt.Sprintf("items[%d].quantity", i)] = "The quantity field is too large."
				continue
			}
			merged[at].Quantity += l.Quantity
			continue
		}
		index[l.DishID] = len(merged)
		merged = append(merged, l)
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return merged, nil
}

// requirements sums recipe amount × quantity per ingredient over all lines.
func (s *OrderService) requirements(tx *gorm.DB, lines []OrderLine) (map[uint]float64, error) {
	qty := make(map[uint]int, len(lines))
	for _, l := range lines {
		qty[l.DishID] = l.Quantity
	}
	rows, err := repositories.NewRecipeRepository(tx).ForDishes(collection.Map(lines, func(l OrderLine) uint { return l.DishID }))
	if err != nil {
		return nil, err
	}

	needed := map[uint]float64{}
	for _, r := range rows {
		needed[r.IngredientID] += r.Amount * float64(qty[r.DishID])
	}
	return needed, nil
}

// checkStock loads every needed ingredient in id order and fails on the
// first one the ledger cannot cover.
func (s *OrderService) checkStock(ingredients *repositories.IngredientRepository, needed map[uint]float64) ([]models.Ingredient, error) {
	ids := make([]uint, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	stock, err := ingredients.FindMany(ids)
	if err != nil {
		return nil, err
	}
	if len(stock) != len(ids) {
		have := collection.KeyBy(stock, func(i models.Ingredient) uint { return i.ID })
		for _, id := range ids {
			if _, ok := have[id]; !ok {
				return nil, notFound("ingredient", id)
			}
		}
	}

	for _, ing := range stock {
		if ing.Quantity+repositories.StockEpsilon < needed[ing.ID] {
			return nil, shortOf(ing, needed[ing.ID], ing.Quantity)
		}
	}
	return stock, nil
}

func shortOf(ing models.Ingredient, required, available float64) *InsufficientStockError {
	return &InsufficientStockError{
		IngredientID: ing.ID,
		Ingredient:   ing.Name,
		Unit:         ing.Unit,
		Required:     required,
		Available:    available,
	}
}

func (s *OrderService) reject(ctx context.Context, user string, err error) {
	reason := rejectionReason(err)
	logger.WithCtx(ctx).Warn("order rejected", "reason", reason, "error", err)
	s.bus.Fire(ctx, EventOrderRejected, OrderRejected{User: user, Reason: reason, Err: err})
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyOrder):
		return "empty"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "persistence"
	}
}

// SetStatus moves an order to Paid or Cancelled. Asking for the status the
// order already has is a no-op reported through AlreadyInState. Leaving a
// terminal status fails with ErrInvalidTransition.
func (s *OrderService) SetStatus(ctx context.Context, caller string, orderID uint, to models.OrderStatus) (StatusChange, error) {
	defer metrics.ObserveOperation("order.set_status", time.Now())

	if to != models.StatusPaid && to != models.StatusCancelled {
		return StatusChange{}, invalid("status", fmt.Sprintf("The status must be %s or %s.", models.StatusPaid, models.StatusCancelled))
	}

	change := StatusChange{OrderID: orderID, To: to}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := repositories.NewOrderRepository(tx)
		order, err := orders.Find(orderID)
		if err != nil {
			return lookup("order", orderID, "order.find", err)
		}
		change.From = order.Status

		if order.Status == to {
			change.AlreadyInState = true
			return nil
		}
		if !order.Status.CanTransition(to) {
			return transitionError(orderID, order.Status, to)
		}

		changed, err := orders.SetStatus(orderID, order.Status, to)
		if err != nil {
			return err
		}
		if !changed {
			return transitionError(orderID, order.Status, to)
		}

		if to == models.StatusCancelled && s.opts.RestoreStockOnCancel {
			if change.Restored, err = s.restore(tx, order); err != nil {
				return err
			}
		}

		action := ActionOrderPaid
		if to == models.StatusCancelled {
			action = ActionOrderCancelled
		}
		s.audit.RecordTx(ctx, tx, caller, action, fmt.Sprintf("Order #%d changed to status '%s'", orderID, to))
		return nil
	})
	if err != nil {
		return StatusChange{}, persist("order.set_status", err)
	}

	if change.AlreadyInState {
		logger.WithCtx(ctx).Info("order already in state", "order_id", orderID, "status", to)
		return change, nil
	}

	logger.WithCtx(ctx).Info("order status changed", "order_id", orderID, "from", change.From, "to", to)
	s.bus.Fire(ctx, EventOrderStatusChanged, OrderStatusChanged{
		OrderID: orderID, User: caller, From: change.From, To: to, Restored: change.Restored,
	})
	return change, nil
}

func transitionError(orderID uint, from, to models.OrderStatus) error {
	return &ValidationError{
		Reason: ErrInvalidTransition,
		Fields: map[string]string{"status": fmt.Sprintf("Order #%d is %s and cannot become %s.", orderID, from, to)},
	}
}

// restore puts today's recipe amounts for the order's items back on the
// ledger. The recipes may have changed since the order was placed.
func (s *OrderService) restore(tx *gorm.DB, order models.Order) ([]models.Ingredient, error) {
	lines := collection.Map(order.Items, func(it models.OrderItem) OrderLine {
		return OrderLine{DishID: it.DishID, Quantity: it.Quantity}
	})
	amounts, err := s.requirements(tx, lines)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(amounts))
	for id := range amounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ingredients := repositories.NewIngredientRepository(tx)
	stock, err := ingredients.FindMany(ids)
	if err != nil {
		return nil, err
	}
	for i, ing := range stock {
		qty, err := ingredients.Increment(ing.ID, amounts[ing.ID])
		if err != nil {
			return nil, err
		}
		stock[i].Quantity = qty
	}
	return stock, nil
}

// List returns every order newest first with items and dishes.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := repositories.NewOrderRepository(s.db.WithContext(ctx)).All()
	if err != nil {
		return nil, persist("order.list", err)
	}
	return orders, nil
}

// Find returns one order with items and dishes.
func (s *OrderService) Find(ctx context.Context, id uint) (models.Order, error) {
	order, err := repositories.NewOrderRepository(s.db.WithContext(ctx)).Find(id)
	if err != nil {
		return models.Order{}, lookup("order", id, "order.find", err)
	}
	return order, nil
}
