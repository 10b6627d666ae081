// Package migration provides a database migration runner.
//
// Migrations register themselves from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
//	}
//
// and are applied in name order, one batch per Run:
//
//	cafe migrate             // run all pending
//	cafe migrate:rollback    // rollback last batch
//	cafe migrate:status      // list ran / pending
package migration

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// migrationRecord is the GORM model stored in the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "cafe_migrations" }

// ------------------- Registry -------------------

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// Register adds a migration to the global registry. Registering the same
// name twice panics.
func Register(name string, m Migration) {
	for _, reg := range registry {
		if reg.name == name {
			panic(fmt.Sprintf("migration: %s registered twice", name))
		}
	}
	registry = append(registry, registeredMigration{name: name, m: m})
}

func sortedRegistry() []registeredMigration {
	out := make([]registeredMigration, len(registry))
	copy(out, registry)
	// Timestamp prefixes sort lexicographically.
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ErrNoMigrations is returned when Run is called but no migrations are registered.
var ErrNoMigrations = errors.New("no migrations registered")

// Status describes one registered migration.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New creates a Runner backed by db. Progress lines go to out; pass
// io.Discard to silence them.
func New(db *gorm.DB, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

func (r *Runner) ranSet() (map[string]migrationRecord, error) {
	var ran []migrationRecord
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, err
	}
	out := make(map[string]migrationRecord, len(ran))
	for _, rec := range ran {
		out[rec.Name] = rec
	}
	return out, nil
}

// Pending returns the names of migrations that have not yet been run.
func (r *Runner) Pending() ([]string, error) {
	ran, err := r.ranSet()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, reg := range sortedRegistry() {
		if _, ok := ran[reg.name]; !ok {
			names = append(names, reg.name)
		}
	}
	return names, nil
}

// Run executes all pending migrations in a single batch and returns how many ran.
func (r *Runner) Run() (int, error) {
	if len(registry) == 0 {
		return 0, ErrNoMigrations
	}
	if err := r.EnsureTable(); err != nil {
		return 0, fmt.Errorf("migration: ensure table: %w", err)
	}

	ran, err := r.ranSet()
	if err != nil {
		return 0, fmt.Errorf("migration: fetch ran: %w", err)
	}

	batch := r.nextBatch()
	count := 0
	for _, reg := range sortedRegistry() {
		if _, done := ran[reg.name]; done {
			continue
		}

		logger.Info("migration: running", "name", reg.name)
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", reg.name)

		if err := reg.m.Up(r.db); err != nil {
			return count, fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		if err := r.db.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error; err != nil {
			return count, fmt.Errorf("migration: record %s: %w", reg.name, err)
		}
		count++
	}

	if count == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}
	logger.Info("migration: done", "ran", count, "batch", batch)
	return count, nil
}

// Rollback reverses all migrations from the most recent batch and returns
// how many were rolled back.
func (r *Runner) Rollback() (int, error) {
	if err := r.EnsureTable(); err != nil {
		return 0, fmt.Errorf("migration: ensure table: %w", err)
	}

	last := r.nextBatch() - 1
	if last == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var records []migrationRecord
	if err := r.db.Where(&migrationRecord{Batch: last}).Order("name desc").Find(&records).Error; err != nil {
		return 0, fmt.Errorf("migration: fetch batch %d: %w", last, err)
	}

	regMap := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		regMap[reg.name] = reg.m
	}

	count := 0
	for _, rec := range records {
		m, ok := regMap[rec.Name]
		if !ok {
			return count, fmt.Errorf("migration: cannot rollback %s: not registered", rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", rec.Name)

		if err := m.Down(r.db); err != nil {
			return count, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return count, fmt.Errorf("migration: forget %s: %w", rec.Name, err)
		}
		count++
	}
	return count, nil
}

// Status lists every registered migration with its run state.
func (r *Runner) Status() ([]Status, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, err
	}
	ran, err := r.ranSet()
	if err != nil {
		return nil, err
	}

	var out []Status
	for _, reg := range sortedRegistry() {
		rec, ok := ran[reg.name]
		out = append(out, Status{Name: reg.name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) nextBatch() int {
	var maxBatch struct{ Max int }
	r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&maxBatch)
	return maxBatch.Max + 1
}
