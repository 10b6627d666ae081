package services

import (
	"context"
	"fmt"
	"math"
	"strings"
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

// Stock levels reported by InventoryService.Report.
const (
	LevelOK      = "ok"
	LevelWarning = "warning"
	LevelLow     = "low"
)

// StockEdit is one row of a bulk ledger edit. ID 0 inserts a new
// ingredient; Delete removes the ingredient with ID.
type StockEdit struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"     validate:"required,max=255"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"     validate:"required,max=20"`
	Delete   bool    `json:"delete"`
}

// StockRow is an ingredient with its classification.
type StockRow struct {
	models.Ingredient
	Level string `json:"level"`
}

// InventoryOptions sets the report thresholds.
type InventoryOptions struct {
	LowThreshold  float64
	WarnThreshold float64
}

// InventoryService reads and edits the ingredient ledger.
type InventoryService struct {
	db    *gorm.DB
	audit *AuditRecorder
	bus   *event.Bus
	opts  InventoryOptions
}

func NewInventoryService(db *gorm.DB, audit *AuditRecorder, bus *event.Bus, opts InventoryOptions) *InventoryService {
	return &InventoryService{db: db, audit: audit, bus: bus, opts: opts}
}

// Levels returns every ingredient ordered by id.
func (s *InventoryService) Levels(ctx context.Context) ([]models.Ingredient, error) {
	levels, err := repositories.NewIngredientRepository(s.db.WithContext(ctx)).All()
	if err != nil {
		return nil, persist("stock.levels", err)
	}
	return levels, nil
}

// Report classifies every ingredient against the low and warning thresholds.
func (s *InventoryService) Report(ctx context.Context) ([]StockRow, error) {
	levels, err := s.Levels(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Map(levels, func(ing models.Ingredient) StockRow {
		return StockRow{Ingredient: ing, Level: s.classify(ing.Quantity)}
	}), nil
}

func (s *InventoryService) classify(qty float64) string {
	switch {
	case qty < s.opts.LowThreshold:
		return LevelLow
	case qty < s.opts.WarnThreshold:
		return LevelWarning
	default:
		return LevelOK
	}
}

// ApplyEdits overwrites, inserts and deletes ledger rows in one transaction
// and returns the resulting levels. Only field types are checked.
func (s *InventoryService) ApplyEdits(ctx context.Context, caller string, edits []StockEdit) ([]models.Ingredient, error) {
	defer metrics.ObserveOperation("stock.apply_edits", time.Now())

	if len(edits) == 0 {
		return nil, invalid("edits", "At least one stock edit is required.")
	}
	fields := map[string]string{}
	for i := range edits {
		edits[i].Name = strings.TrimSpace(edits[i].Name)
		edits[i].Unit = strings.TrimSpace(edits[i].Unit)
		if edits[i].Delete {
			if edits[i].ID == 0 {
				fields[fmt.Sprintf("edits[%d].id", i)] = "The id field is required to delete an ingredient."
			}
			continue
		}
		if math.IsInf(edits[i].Quantity, 0) {
			fields[fmt.Sprintf("edits[%d].quantity", i)] = "The quantity field must be a number."
			continue
		}
		for k, msg := range validate.Struct(edits[i]) {
			fields[fmt.Sprintf("edits[%d].%s", i, k)] = msg
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var (
		touched []uint
		deleted []uint
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredients := repositories.NewIngredientRepository(tx)
		for _, e := range edits {
			switch {
			case e.Delete:
				n, err := ingredients.Delete(e.ID)
				if err != nil {
					return err
				}
				if n == 0 {
					return notFound("ingredient", e.ID)
				}
				deleted = append(deleted, e.ID)
			case e.ID == 0:
				ing := models.Ingredient{Name: e.Name, Quantity: e.Quantity, Unit: e.Unit}
				if err := ingredients.Create(&ing); err != nil {
					return err
				}
				touched = append(touched, ing.ID)
			default:
				n, err := ingredients.Overwrite(models.Ingredient{ID: e.ID, Name: e.Name, Quantity: e.Quantity, Unit: e.Unit})
				if err != nil {
					return err
				}
				if n == 0 {
					// mysql reports 0 affected rows when nothing changed
					if _, err := ingredients.Find(e.ID); err != nil {
						return lookup("ingredient", e.ID, "stock.apply_edits", err)
					}
				}
				touched = append(touched, e.ID)
			}
		}
		s.audit.RecordTx(ctx, tx, caller, ActionStockUpdated, fmt.Sprintf("Updated %d ingredients", len(edits)))
		return nil
	})
	if err != nil {
		return nil, persist("stock.apply_edits", err)
	}

	levels, err := repositories.NewIngredientRepository(s.db.WithContext(ctx)).FindMany(collection.Unique(touched))
	if err != nil {
		return nil, persist("stock.apply_edits", err)
	}

	logger.WithCtx(ctx).Info("stock updated", "edited", len(touched), "deleted", len(deleted))
	s.bus.Fire(ctx, EventStockChanged, StockChanged{User: caller, Levels: levels, Deleted: deleted})
	return levels, nil
}
