// Package item defines the consumable and equipment catalog and the home
// shop's price list.
package item

import (
	"strings"

	"github.com/Silcet/rpg-cli/internal/game/character"
)

// Canonical item names. Inventory and shop entries are keyed by these.
const (
	Potion = "potion"
	Escape = "escape"
	Sword  = "sword"
	Shield = "shield"
)

// potionRestore is the HP a potion recovers, as a curve over the level the
// potion was bought at.
var potionRestore = character.Stat{Base: 25, Increase: 5}

// PotionRestore returns the HP recovered by a potion of the given level.
//
// Postcondition: Strictly increasing in level.
func PotionRestore(level int) int {
	return potionRestore.At(level)
}

// Sanitize maps user-facing aliases to canonical item names. Unknown names
// pass through lowercased for the caller to reject.
func Sanitize(name string) string {
	name = strings.ToLower(name)
	switch name {
	case "p", Potion:
		return Potion
	case "e", Escape:
		return Escape
	case "sw", Sword:
		return Sword
	case "sh", Shield:
		return Shield
	default:
		return name
	}
}
