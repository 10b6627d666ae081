package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/repositories"
	"github.com/shashiranjanraj/cafedesk/pkg/collection"
)

// StatusTotal aggregates orders of one status.
type StatusTotal struct {
	Status  models.OrderStatus `json:"status"`
	Orders  int                `json:"orders"`
	Revenue float64            `json:"revenue"`
}

// DishTotal is how many portions of a dish were sold and for how much, at
// today's price.
type DishTotal struct {
	DishID   uint    `json:"dish_id"`
	Dish     string  `json:"dish"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// SalesReport summarises orders created inside a date range. Cancelled
// orders are counted in ByStatus but not in Revenue or Dishes.
type SalesReport struct {
	Orders   []models.Order `json:"orders"`
	ByStatus []StatusTotal  `json:"by_status"`
	Dishes   []DishTotal    `json:"dishes"`
	Revenue  float64        `json:"revenue"`
}

// ReportService builds read-only summaries over orders.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Sales reports orders created on the calendar days from..to, inclusive.
// Nil bounds are open.
func (s *ReportService) Sales(ctx context.Context, from, to *time.Time) (SalesReport, error) {
	if from != nil && to != nil && startOfDay(*from).After(startOfDay(*to)) {
		return SalesReport{}, invalid("from", "The from date must not be after the to date.")
	}

	all, err := repositories.NewOrderRepository(s.db.WithContext(ctx)).All()
	if err != nil {
		return SalesReport{}, persist("report.sales", err)
	}

	orders := collection.Filter(all, func(o models.Order) bool {
		created := o.CreatedAt.Local()
		if from != nil && created.Before(startOfDay(*from)) {
			return false
		}
		if to != nil && !created.Before(startOfDay(*to).AddDate(0, 0, 1)) {
			return false
		}
		return true
	})

	report := SalesReport{Orders: orders}
	grouped := collection.GroupBy(orders, func(o models.Order) models.OrderStatus { return o.Status })
	for _, status := range []models.OrderStatus{models.StatusCreated, models.StatusPaid, models.StatusCancelled} {
		group := grouped[status]
		report.ByStatus = append(report.ByStatus, StatusTotal{
			Status:  status,
			Orders:  len(group),
			Revenue: collection.Sum(group, func(o models.Order) float64 { return o.Total }),
		})
	}

	live := collection.Filter(orders, func(o models.Order) bool { return o.Status != models.StatusCancelled })
	report.Revenue = collection.Sum(live, func(o models.Order) float64 { return o.Total })

	var items []models.OrderItem
	for _, o := range live {
		items = append(items, o.Items...)
	}
	for dishID, lines := range collection.GroupBy(items, func(it models.OrderItem) uint { return it.DishID }) {
		qty := int(collection.Sum(lines, func(it models.OrderItem) float64 { return float64(it.Quantity) }))
		report.Dishes = append(report.Dishes, DishTotal{
			DishID:   dishID,
			Dish:     lines[0].Dish.Name,
			Quantity: qty,
			Revenue:  float64(qty) * lines[0].Dish.Price,
		})
	}
	report.Dishes = collection.SortBy(report.Dishes, func(a, b DishTotal) bool {
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.DishID < b.DishID
	})

	return report, nil
}
