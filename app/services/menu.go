package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/repositories"
	"github.com/shashiranjanraj/cafedesk/pkg/event"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
	"github.com/shashiranjanraj/cafedesk/pkg/validate"
)

// DishInput is the editable part of a dish.
type DishInput struct {
	Name  string  `json:"name"  validate:"required,max=255"`
	Price float64 `json:"price" validate:"gte=0"`
}

// MenuService maintains the dishes table.
type MenuService struct {
	db    *gorm.DB
	audit *AuditRecorder
	bus   *event.Bus
}

func NewMenuService(db *gorm.DB, audit *AuditRecorder, bus *event.Bus) *MenuService {
	return &MenuService{db: db, audit: audit, bus: bus}
}

// List returns the menu ordered by name.
func (s *MenuService) List(ctx context.Context) ([]models.Dish, error) {
	dishes, err := repositories.NewDishRepository(s.db.WithContext(ctx)).All()
	if err != nil {
		return nil, persist("menu.list", err)
	}
	return dishes, nil
}

// Add creates a dish.
func (s *MenuService) Add(ctx context.Context, caller string, in DishInput) (models.Dish, error) {
	if err := checkDish(&in); err != nil {
		return models.Dish{}, err
	}

	dish := models.Dish{Name: in.Name, Price: in.Price}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewDishRepository(tx).Create(&dish); err != nil {
			return err
		}
		s.audit.RecordTx(ctx, tx, caller, ActionDishAdded, fmt.Sprintf("Dish #%d '%s' added at %.2f", dish.ID, dish.Name, dish.Price))
		return nil
	})
	if err != nil {
		return models.Dish{}, persist("menu.add", err)
	}

	s.changed(ctx, caller, ActionDishAdded, dish.ID)
	return dish, nil
}

// Update renames or reprices a dish. Confirmed orders keep their totals.
func (s *MenuService) Update(ctx context.Context, caller string, id uint, in DishInput) (models.Dish, error) {
	if err := checkDish(&in); err != nil {
		return models.Dish{}, err
	}

	var dish models.Dish
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dishes := repositories.NewDishRepository(tx)
		var err error
		if dish, err = dishes.Find(id); err != nil {
			return lookup("dish", id, "menu.update", err)
		}
		dish.Name, dish.Price = in.Name, in.Price
		if err := dishes.Update(&dish); err != nil {
			return err
		}
		s.audit.RecordTx(ctx, tx, caller, ActionDishUpdated, fmt.Sprintf("Dish #%d now '%s' at %.2f", dish.ID, dish.Name, dish.Price))
		return nil
	})
	if err != nil {
		return models.Dish{}, persist("menu.update", err)
	}

	s.changed(ctx, caller, ActionDishUpdated, dish.ID)
	return dish, nil
}

// Delete removes a dish together with its recipe rows. Dishes that appear
// on any order cannot be deleted.
func (s *MenuService) Delete(ctx context.Context, caller string, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dishes := repositories.NewDishRepository(tx)
		dish, err := dishes.Find(id)
		if err != nil {
			return lookup("dish", id, "menu.delete", err)
		}

		used, err := dishes.InOrders(id)
		if err != nil {
			return err
		}
		if used {
			return invalid("dish_id", fmt.Sprintf("Dish '%s' appears on existing orders and cannot be deleted.", dish.Name))
		}

		if _, err := dishes.Delete(id); err != nil {
			return err
		}
		s.audit.RecordTx(ctx, tx, caller, ActionDishDeleted, fmt.Sprintf("Dish #%d '%s' deleted", dish.ID, dish.Name))
		return nil
	})
	if err != nil {
		return persist("menu.delete", err)
	}

	s.changed(ctx, caller, ActionDishDeleted, id)
	return nil
}

func (s *MenuService) changed(ctx context.Context, caller, action string, id uint) {
	logger.WithCtx(ctx).Info("menu changed", "action", action, "dish_id", id)
	s.bus.Fire(ctx, EventMenuChanged, MenuChanged{User: caller, Action: action, DishID: id})
}

func checkDish(in *DishInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	return nil
}
