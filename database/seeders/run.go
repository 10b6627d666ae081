// Package seeders fills a fresh database with the starter café: the default
// administrator, a small menu, its ingredients and their recipes.
//
// Seeders register from init() and must be idempotent so `cafe seed` can be
// re-run against a populated database.
package seeders

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(db *gorm.DB) error

type seeder struct {
	name string
	fn   SeederFunc
}

var (
	mu       sync.Mutex
	registry []seeder
)

// Register adds a seeder. Registration order is run order, so recipes must
// come after the dishes and ingredients they point at.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, seeder{name: name, fn: fn})
}

// Names lists the registered seeders in run order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	return namesLocked()
}

// RunAll executes every registered seeder.
func RunAll(db *gorm.DB, out io.Writer) error {
	return Run(db, out)
}

// Run executes the named seeders, or all of them when names is empty. Each
// seeder gets its own transaction; the first failure stops the run.
func Run(db *gorm.DB, out io.Writer, names ...string) error {
	if out == nil {
		out = io.Discard
	}

	selected, err := pick(names)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}

	for _, s := range selected {
		fmt.Fprintf(out, "  • Seeding %s … ", s.name)
		if err := db.Transaction(s.fn); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("seeder %q: %w", s.name, err)
		}
		fmt.Fprintln(out, "done")
	}
	return nil
}

func pick(names []string) ([]seeder, error) {
	mu.Lock()
	defer mu.Unlock()

	if len(names) == 0 {
		return append([]seeder(nil), registry...), nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var out []seeder
	for _, s := range registry {
		if want[s.name] {
			out = append(out, s)
			delete(want, s.name)
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for n := range want {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown seeder(s): %s (have %s)", strings.Join(unknown, ", "), strings.Join(namesLocked(), ", "))
	}
	return out, nil
}

func namesLocked() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.name
	}
	return names
}
