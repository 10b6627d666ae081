package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shashiranjanraj/cafedesk/app/services"
)

const dateLayout = "2006-01-02"

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

func parseAmount(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// parseOrderLines reads "dish:qty" pairs. A bare dish id means one portion.
func parseOrderLines(args []string) ([]services.OrderLine, error) {
	lines := make([]services.OrderLine, 0, len(args))
	for _, arg := range args {
		dish, qty, hasQty := strings.Cut(arg, ":")
		id, err := parseID(dish)
		if err != nil {
			return nil, fmt.Errorf("order line %q: %w", arg, err)
		}
		n := 1
		if hasQty {
			if n, err = strconv.Atoi(strings.TrimSpace(qty)); err != nil {
				return nil, fmt.Errorf("order line %q: invalid quantity %q", arg, qty)
			}
		}
		lines = append(lines, services.OrderLine{DishID: id, Quantity: n})
	}
	return lines, nil
}

// parseRecipe reads "ingredient=amount" pairs. A later pair for the same
// ingredient wins.
func parseRecipe(args []string) (map[uint]float64, error) {
	amounts := make(map[uint]float64, len(args))
	for _, arg := range args {
		ing, amount, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("recipe row %q: expected ingredient=amount", arg)
		}
		id, err := parseID(ing)
		if err != nil {
			return nil, fmt.Errorf("recipe row %q: %w", arg, err)
		}
		if amounts[id], err = parseAmount(amount); err != nil {
			return nil, fmt.Errorf("recipe row %q: %w", arg, err)
		}
	}
	return amounts, nil
}

// parseDate reads a YYYY-MM-DD flag value in local time. Empty means open.
func parseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}
