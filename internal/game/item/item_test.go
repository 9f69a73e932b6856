package item_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Silcet/rpg-cli/internal/game/item"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"p":      item.Potion,
		"potion": item.Potion,
		"e":      item.Escape,
		"sw":     item.Sword,
		"sh":     item.Shield,
		"SW":     item.Sword,
		"banana": "banana",
	}
	for in, want := range cases {
		assert.Equal(t, want, item.Sanitize(in), "input %q", in)
	}
}

func TestList_PricesScaleWithLevel(t *testing.T) {
	lvl1 := item.List(1)
	lvl3 := item.List(3)
	require.Len(t, lvl1, 4)

	costs := func(entries []item.Entry) map[string]int {
		m := make(map[string]int)
		for _, e := range entries {
			m[e.Name] = e.Cost
		}
		return m
	}
	c1, c3 := costs(lvl1), costs(lvl3)

	assert.Equal(t, 200, c1[item.Potion])
	assert.Equal(t, 600, c3[item.Potion])
	assert.Equal(t, 500, c1[item.Sword])
	assert.Equal(t, 1500, c3[item.Shield])
	// Escapes are a flat price.
	assert.Equal(t, c1[item.Escape], c3[item.Escape])
}

func TestList_SortedByCost(t *testing.T) {
	entries := item.List(2)
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].Cost, entries[i].Cost)
	}
}

func TestCost_UnknownItem(t *testing.T) {
	_, err := item.Cost("banana", 1)
	assert.ErrorIs(t, err, item.ErrItemNotAvailable)
}

func TestPotionRestore_Increasing(t *testing.T) {
	prev := 0
	for level := 1; level <= 20; level++ {
		r := item.PotionRestore(level)
		assert.Greater(t, r, prev)
		prev = r
	}
}
