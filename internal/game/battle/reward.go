package battle

import "github.com/Silcet/rpg-cli/internal/game/character"

// goldPerLevel is the base gold payout per enemy level before the rarity
// multiplier.
const goldPerLevel = 50

// tierMultiplier scales rewards by enemy rarity.
func tierMultiplier(category character.Category) int {
	switch category {
	case character.CategoryRare:
		return 2
	case character.CategoryLegendary:
		return 3
	default:
		return 1
	}
}

// XPReward returns the experience payout for defeating enemy: its attack
// plus half its max HP, scaled by rarity. Deterministic given the enemy's
// class and level.
//
// Postcondition: Returns >= 1.
func XPReward(enemy *character.Character) int {
	base := enemy.Attack() + enemy.MaxHP/2
	return base * tierMultiplier(enemy.Class().Category)
}

// GoldReward returns the gold payout for defeating enemy. Deterministic
// given the enemy's class and level.
//
// Postcondition: Returns >= goldPerLevel.
func GoldReward(enemy *character.Character) int {
	return goldPerLevel * enemy.Level * tierMultiplier(enemy.Class().Category)
}

// BribeCost is the gold required to pay off enemy instead of fighting:
// half of its defeat payout.
func BribeCost(enemy *character.Character) int {
	return GoldReward(enemy) / 2
}
