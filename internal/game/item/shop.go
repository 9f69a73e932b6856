package item

import (
	"errors"
	"sort"
)

// ErrNotEnoughGold is returned when the player cannot afford a purchase.
var ErrNotEnoughGold = errors.New("not enough gold")

// ErrItemNotAvailable is returned for names the shop does not stock.
var ErrItemNotAvailable = errors.New("item not available")

// Shop prices. Consumables and equipment scale with the buyer's level so
// the shop stays relevant as the hero grows; escapes are a flat luxury.
const (
	potionCostPerLevel    = 200
	escapeCost            = 1000
	equipmentCostPerLevel = 500
)

// Entry is one displayable, priced shop item.
type Entry struct {
	Name string
	Cost int
}

// List returns the shop stock priced for a buyer of the given level,
// ordered by cost ascending.
//
// Precondition: level >= 1.
func List(level int) []Entry {
	entries := []Entry{
		{Name: Potion, Cost: potionCostPerLevel * level},
		{Name: Escape, Cost: escapeCost},
		{Name: Sword, Cost: equipmentCostPerLevel * level},
		{Name: Shield, Cost: equipmentCostPerLevel * level},
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Cost < entries[j].Cost })
	return entries
}

// Cost returns the price of name for a buyer of the given level.
//
// Postcondition: Returns ErrItemNotAvailable for unknown names.
func Cost(name string, level int) (int, error) {
	for _, e := range List(level) {
		if e.Name == name {
			return e.Cost, nil
		}
	}
	return 0, ErrItemNotAvailable
}
