package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/repositories"
	"github.com/shashiranjanraj/cafedesk/pkg/collection"
	"github.com/shashiranjanraj/cafedesk/pkg/event"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
)

// RecipeLine is one ingredient of a dish with the amount a single portion
// consumes.
type RecipeLine struct {
	IngredientID uint    `json:"ingredient_id"`
	Ingredient   string  `json:"ingredient"`
	Unit         string  `json:"unit"`
	Amount       float64 `json:"amount"`
}

// RecipeService reads and replaces bills of materials.
type RecipeService struct {
	db    *gorm.DB
	audit *AuditRecorder
	bus   *event.Bus
}

func NewRecipeService(db *gorm.DB, audit *AuditRecorder, bus *event.Bus) *RecipeService {
	return &RecipeService{db: db, audit: audit, bus: bus}
}

// Resolve returns the current recipe of a dish ordered by ingredient id.
func (s *RecipeService) Resolve(ctx context.Context, dishID uint) ([]RecipeLine, error) {
	db := s.db.WithContext(ctx)
	if _, err := repositories.NewDishRepository(db).Find(dishID); err != nil {
		return nil, lookup("dish", dishID, "recipe.resolve", err)
	}

	rows, err := repositories.NewRecipeRepository(db).ForDish(dishID)
	if err != nil {
		return nil, persist("recipe.resolve", err)
	}
	return collection.Map(rows, func(r models.Recipe) RecipeLine {
		return RecipeLine{
			IngredientID: r.IngredientID,
			Ingredient:   r.Ingredient.Name,
			Unit:         r.Ingredient.Unit,
			Amount:       r.Amount,
		}
	}), nil
}

// Sheet lists every ingredient with the amount the dish uses, zero when the
// dish does not use it.
func (s *RecipeService) Sheet(ctx context.Context, dishID uint) ([]RecipeLine, error) {
	current, err := s.Resolve(ctx, dishID)
	if err != nil {
		return nil, err
	}
	used := collection.KeyBy(current, func(l RecipeLine) uint { return l.IngredientID })

	all, err := repositories.NewIngredientRepository(s.db.WithContext(ctx)).All()
	if err != nil {
		return nil, persist("recipe.sheet", err)
	}
	return collection.Map(all, func(ing models.Ingredient) RecipeLine {
		return RecipeLine{
			IngredientID: ing.ID,
			Ingredient:   ing.Name,
			Unit:         ing.Unit,
			Amount:       used[ing.ID].Amount,
		}
	}), nil
}

// Save replaces the recipe of dishID with amounts. Non-positive and NaN
// amounts are dropped, so passing a zero removes that ingredient. Returns how
// many rows were stored.
func (s *RecipeService) Save(ctx context.Context, caller string, dishID uint, amounts map[uint]float64) (int, error) {
	defer metrics.ObserveOperation("recipe.save", time.Now())

	rows := make([]models.Recipe, 0, len(amounts))
	for ingID, amount := range amounts {
		if !(amount > 0) {
			continue
		}
		rows = append(rows, models.Recipe{DishID: dishID, IngredientID: ingID, Amount: amount})
	}
	rows = collection.SortBy(rows, func(a, b models.Recipe) bool { return a.IngredientID < b.IngredientID })

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repositories.NewDishRepository(tx).Find(dishID); err != nil {
			return lookup("dish", dishID, "recipe.save", err)
		}

		ids := collection.Map(rows, func(r models.Recipe) uint { return r.IngredientID })
		found, err := repositories.NewIngredientRepository(tx).FindMany(ids)
		if err != nil {
			return err
		}
		if len(found) != len(ids) {
			have := collection.KeyBy(found, func(i models.Ingredient) uint { return i.ID })
			for _, id := range ids {
				if _, ok := have[id]; !ok {
					return notFound("ingredient", id)
				}
			}
		}

		if err := repositories.NewRecipeRepository(tx).Replace(dishID, rows); err != nil {
			return err
		}
		s.audit.RecordTx(ctx, tx, caller, ActionRecipeSaved,
			fmt.Sprintf("Recipe for dish #%d saved with %d ingredients", dishID, len(rows)))
		return nil
	})
	if err != nil {
		return 0, persist("recipe.save", err)
	}

	logger.WithCtx(ctx).Info("recipe saved", "dish_id", dishID, "rows", len(rows))
	s.bus.Fire(ctx, EventRecipeSaved, RecipeSaved{User: caller, DishID: dishID, Rows: len(rows)})
	return len(rows), nil
}
