package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/cafedesk/pkg/collection"
)

type line struct {
	dish  string
	qty   int
	price float64
}

var lines = []line{
	{"Latte", 2, 180},
	{"Borscht", 1, 250},
	{"Latte", 1, 180},
}

func TestMapFilterSum(t *testing.T) {
	names := collection.Map(lines, func(l line) string { return l.dish })
	assert.Equal(t, []string{"Latte", "Borscht", "Latte"}, names)

	lattes := collection.Filter(lines, func(l line) bool { return l.dish == "Latte" })
	assert.Len(t, lattes, 2)

	total := collection.Sum(lines, func(l line) float64 { return l.price * float64(l.qty) })
	assert.Equal(t, 790.0, total)
}

func TestKeyByAndGroupBy(t *testing.T) {
	byDish := collection.KeyBy(lines, func(l line) string { return l.dish })
	assert.Equal(t, 1, byDish["Latte"].qty)

	grouped := collection.GroupBy(lines, func(l line) string { return l.dish })
	assert.Len(t, grouped["Latte"], 2)
	assert.Equal(t, 2, grouped["Latte"][0].qty)
}

func TestSortByIsStableCopy(t *testing.T) {
	sorted := collection.SortBy(lines, func(a, b line) bool { return a.dish < b.dish })
	assert.Equal(t, "Borscht", sorted[0].dish)
	assert.Equal(t, 2, sorted[1].qty)
	assert.Equal(t, "Latte", lines[0].dish)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, collection.Unique([]uint{3, 1, 3, 2, 1}))
}
