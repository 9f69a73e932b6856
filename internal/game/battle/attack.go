package battle

import (
	"github.com/Silcet/rpg-cli/internal/game/character"
	"github.com/Silcet/rpg-cli/internal/game/dice"
	"github.com/Silcet/rpg-cli/internal/game/event"
)

// Balance parameters for attack classification and flee resolution.
const (
	// critChancePct is the chance of a critical hit dealing double damage.
	critChancePct = 5
	// effectChancePct is the chance an afflicting class applies its status
	// effect instead of a plain hit.
	effectChancePct = 25
	// missChancePerSpeed converts the defender's speed advantage into miss
	// percentage points.
	missChancePerSpeed = 3
	// maxMissChancePct caps evasion so slow attackers still land hits.
	maxMissChancePct = 40

	// fleeBaseChancePct is the flee success chance at equal speeds; each
	// point of speed difference shifts it by fleeChancePerSpeed.
	fleeBaseChancePct = 50
	fleeChancePerSpeed = 2
	minFleeChancePct   = 10
	maxFleeChancePct   = 95
)

// missChance returns the percent chance that defender evades attacker,
// growing with the defender's speed advantage.
//
// Postcondition: Returns a value in [0, maxMissChancePct].
func missChance(attacker, defender *character.Character) int {
	diff := defender.Speed() - attacker.Speed()
	if diff <= 0 {
		return 0
	}
	chance := diff * missChancePerSpeed
	if chance > maxMissChancePct {
		chance = maxMissChancePct
	}
	return chance
}

// fleeChance returns the percent chance a flee attempt succeeds, rising with
// the player's speed relative to the enemy's.
//
// Postcondition: Returns a value in [minFleeChancePct, maxFleeChancePct].
func fleeChance(player, enemy *character.Character) int {
	chance := fleeBaseChancePct + fleeChancePerSpeed*(player.Speed()-enemy.Speed())
	if chance < minFleeChancePct {
		chance = minFleeChancePct
	}
	if chance > maxFleeChancePct {
		chance = maxFleeChancePct
	}
	return chance
}

// baseDamage is the damage of a regular hit: attack minus the defender's
// shield contribution, but always at least 1 so battles terminate.
func baseDamage(attacker, defender *character.Character) int {
	damage := attacker.Attack() - defender.Deffense()
	if damage < 1 {
		damage = 1
	}
	return damage
}

// resolveAttack classifies one attacking turn and applies its damage to the
// defender. Exactly one outcome is produced: a miss deals nothing; an effect
// outcome applies the attacker's affliction and deals its magnitude; a
// critical deals double base damage.
//
// Precondition: attacker and defender must be alive; src must be non-nil.
// Postcondition: defender.CurrentHP >= 0.
func resolveAttack(attacker, defender *character.Character, src dice.Source) event.Attack {
	if dice.Percent(missChance(attacker, defender), src) {
		return event.Attack{Kind: event.AttackMiss}
	}

	if inflicts := attacker.Class().Inflicts; inflicts != nil && dice.Percent(effectChancePct, src) {
		defender.Inflict(*inflicts)
		defender.ReceiveDamage(inflicts.Magnitude)
		return event.Attack{
			Kind:   event.AttackEffect,
			Damage: inflicts.Magnitude,
			Effect: inflicts.Effect,
		}
	}

	damage := baseDamage(attacker, defender)
	if dice.Percent(critChancePct, src) {
		damage *= 2
		defender.ReceiveDamage(damage)
		return event.Attack{Kind: event.AttackCritical, Damage: damage}
	}

	defender.ReceiveDamage(damage)
	return event.Attack{Kind: event.AttackRegular, Damage: damage}
}
