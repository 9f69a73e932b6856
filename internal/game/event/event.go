// Package event defines the discrete events the game core emits for the
// rendering/log collaborator. Events form a closed set dispatched
// exhaustively by the renderer; they carry no behavior.
package event

import "github.com/Silcet/rpg-cli/internal/game/character"

// AttackKind classifies the outcome of one attacking turn. Exactly one kind
// is produced per attack.
type AttackKind int

const (
	AttackRegular AttackKind = iota
	AttackCritical
	// AttackEffect is an attack that applies the attacker's status effect;
	// it is only reachable when the attacking class defines an affliction.
	AttackEffect
	AttackMiss
)

// String returns a short human-readable label for the attack kind.
func (k AttackKind) String() string {
	switch k {
	case AttackRegular:
		return "regular"
	case AttackCritical:
		return "critical"
	case AttackEffect:
		return "effect"
	case AttackMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Attack is a classified attack outcome: the kind, the damage dealt (zero
// for a miss), and the applied effect when Kind == AttackEffect.
type Attack struct {
	Kind   AttackKind
	Damage int
	Effect character.StatusEffect
}

// Sink consumes the ordered event stream of a battle or action.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event)

// Emit calls f.
func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard is a Sink that drops all events.
var Discard Sink = SinkFunc(func(Event) {})

// Event is one entry in the ordered sequence emitted per battle or action.
type Event interface {
	isEvent()
}

// EnemyAppears announces the enemy at the start of an encounter.
type EnemyAppears struct {
	Enemy *character.Character
}

// PlayerAttack is one attacking turn taken by the player against the enemy.
type PlayerAttack struct {
	Enemy  *character.Character
	Attack Attack
}

// EnemyAttack is one attacking turn taken by the enemy against the player.
type EnemyAttack struct {
	Attack Attack
}

// StatusEffectDamage is a damage-over-time tick, reported separately from
// attack damage.
type StatusEffectDamage struct {
	Target *character.Character
	Damage int
}

// BattleWon reports the victory payout.
type BattleWon struct {
	XP       int
	LevelsUp int
	Gold     int
}

// BattleLost reports the player's death in battle.
type BattleLost struct{}

// ChestFound reports treasure discovered while inspecting a location.
type ChestFound struct {
	Items []string
	Gold  int
}

// TombstoneFound reports a recovered tombstone left by a previous death.
type TombstoneFound struct {
	Items []string
	Gold  int
}

// Bribe reports a bribe attempt; Cost is zero when the player could not
// afford one.
type Bribe struct {
	Cost int
}

// RunAway reports a flee attempt.
type RunAway struct {
	Success bool
}

// Heal reports HP recovery and/or a cleared status effect. Item is the
// consumed item name, or empty for location-based healing.
type Heal struct {
	Item      string
	Recovered int
	Healed    bool
}

// LevelUp reports player level gains. The count also rides on the BattleWon
// summary, which is where the renderer reports it.
type LevelUp struct {
	Count int
}

// ItemBought reports a successful shop purchase.
type ItemBought struct {
	Item string
	Cost int
}

// ItemUsed reports a consumed inventory item.
type ItemUsed struct {
	Item string
}

// QuestDone reports a completed quest and its gold reward.
type QuestDone struct {
	Quest  string
	Reward int
}

func (EnemyAppears) isEvent()       {}
func (PlayerAttack) isEvent()       {}
func (EnemyAttack) isEvent()        {}
func (StatusEffectDamage) isEvent() {}
func (BattleWon) isEvent()          {}
func (BattleLost) isEvent()         {}
func (ChestFound) isEvent()         {}
func (TombstoneFound) isEvent()     {}
func (Bribe) isEvent()              {}
func (RunAway) isEvent()            {}
func (Heal) isEvent()               {}
func (LevelUp) isEvent()            {}
func (ItemBought) isEvent()         {}
func (ItemUsed) isEvent()           {}
func (QuestDone) isEvent()          {}
