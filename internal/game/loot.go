package game

import (
	"github.com/Silcet/rpg-cli/internal/game/dice"
	"github.com/Silcet/rpg-cli/internal/game/item"
	"github.com/Silcet/rpg-cli/internal/game/location"
)

// chestDrop is a single item entry in the chest table with a drop chance.
type chestDrop struct {
	Item      string
	ChancePct int
	MinQty    int
	MaxQty    int
}

// chestDrops is the fixed table rolled for every treasure chest.
var chestDrops = []chestDrop{
	{Item: item.Potion, ChancePct: 40, MinQty: 1, MaxQty: 2},
	{Item: item.Escape, ChancePct: 10, MinQty: 1, MaxQty: 1},
}

const chestGoldPerStep = 50

// rollChest generates the contents of a treasure chest. Gold scales with
// the distance from home; each table entry is rolled independently.
//
// Postcondition: gold >= 1; items holds only entries with quantity >= 1.
func rollChest(d location.Distance, src dice.Source) (gold int, items map[string]int) {
	steps := d.Magnitude
	if steps < 1 {
		steps = 1
	}
	gold = dice.Range(1, chestGoldPerStep*steps, src)

	items = make(map[string]int)
	for _, drop := range chestDrops {
		if !dice.Percent(drop.ChancePct, src) {
			continue
		}
		items[drop.Item] += dice.Range(drop.MinQty, drop.MaxQty, src)
	}
	return gold, items
}
