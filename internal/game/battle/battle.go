// Package battle implements the turn-based combat resolver: it runs a fight
// between the player and one enemy to a terminal state, emitting the ordered
// event sequence as it goes.
package battle

import (
	"go.uber.org/zap"

	"github.com/Silcet/rpg-cli/internal/game/character"
	"github.com/Silcet/rpg-cli/internal/game/dice"
	"github.com/Silcet/rpg-cli/internal/game/event"
)

// State is the battle state machine. Ongoing is the only non-terminal state;
// terminal states are absorbing.
type State int

const (
	Ongoing State = iota
	PlayerWon
	PlayerDied
	PlayerFled
	PlayerBribed
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case PlayerWon:
		return "player won"
	case PlayerDied:
		return "player died"
	case PlayerFled:
		return "player fled"
	case PlayerBribed:
		return "player bribed"
	default:
		return "unknown"
	}
}

// Options carries the player's intent flags and wallet into a fight.
type Options struct {
	// Run requests a flee attempt at the start of every round.
	Run bool
	// Bribe requests paying the enemy off instead of fighting.
	Bribe bool
	// Gold is the player's current wallet, used for bribe affordability.
	// The resolver never mutates the wallet; the caller applies BribeCost.
	Gold int
}

// Result is the outcome of a resolved battle.
type Result struct {
	State State
	// BribeCost is the gold to deduct when State == PlayerBribed, zero otherwise.
	BribeCost int
	// Events is the full ordered event sequence of the battle.
	Events []event.Event
}

// fight tracks one battle in progress.
type fight struct {
	player *character.Character
	enemy  *character.Character
	opts   Options
	src    dice.Source
	logger *zap.Logger
	sink   event.Sink
	events []event.Event
}

// Fight resolves one battle to a terminal state. Attacker roles alternate
// each round ordered by speed, the player acting first on ties. Events are
// forwarded to sink as they happen and returned in order on the Result.
//
// Precondition: player and enemy must be alive and bound to their classes;
// src must be non-nil. A nil logger or sink is replaced with a no-op.
// Postcondition: Result.State != Ongoing; the battle mutated player and
// enemy HP in place; a dead character is never mutated after reaching 0 HP.
func Fight(player, enemy *character.Character, opts Options, src dice.Source, sink event.Sink, logger *zap.Logger) Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = event.Discard
	}
	f := &fight{player: player, enemy: enemy, opts: opts, src: src, logger: logger, sink: sink}
	return f.run()
}

func (f *fight) run() Result {
	f.logger.Debug("battle start",
		zap.String("enemy", f.enemy.Name()),
		zap.Int("enemy_level", f.enemy.Level),
		zap.Int("player_hp", f.player.CurrentHP),
		zap.Bool("run", f.opts.Run),
		zap.Bool("bribe", f.opts.Bribe),
	)

	for round := 1; ; round++ {
		state := f.round(round)
		if state != Ongoing {
			f.logger.Debug("battle end",
				zap.Int("rounds", round),
				zap.String("state", state.String()),
			)
			result := Result{State: state, Events: f.events}
			if state == PlayerBribed {
				result.BribeCost = BribeCost(f.enemy)
			}
			return result
		}
	}
}

// round plays one full round and returns the resulting state.
func (f *fight) round(round int) State {
	// An effect inflicted during this round's exchange must not tick until
	// the next round; only effects already held at round start are pending.
	pending := map[*character.Character]bool{
		f.player: f.player.StatusEffect != nil,
		f.enemy:  f.enemy.StatusEffect != nil,
	}

	// Flee is rolled every round; its chance rises with the player's speed
	// advantage. A successful flee deals no damage.
	if f.opts.Run {
		success := dice.Percent(fleeChance(f.player, f.enemy), f.src)
		f.emit(event.RunAway{Success: success})
		if success {
			return PlayerFled
		}
	}

	// Bribing is deterministic given the wallet, so it is attempted once.
	if f.opts.Bribe && round == 1 {
		cost := BribeCost(f.enemy)
		if f.opts.Gold >= cost {
			f.emit(event.Bribe{Cost: cost})
			return PlayerBribed
		}
		f.emit(event.Bribe{Cost: 0})
	}

	// One attack exchange, faster character first, player first on ties.
	first, second := f.player, f.enemy
	if f.enemy.Speed() > f.player.Speed() {
		first, second = f.enemy, f.player
	}

	if state := f.attack(first, second); state != Ongoing {
		return state
	}
	if state := f.attack(second, first); state != Ongoing {
		return state
	}

	// Status effects tick once per round for whoever holds one.
	for _, holder := range []*character.Character{f.player, f.enemy} {
		if !pending[holder] {
			continue
		}
		if damage := holder.TickStatusEffect(); damage > 0 {
			f.emit(event.StatusEffectDamage{Target: holder, Damage: damage})
			if state := f.checkDeath(); state != Ongoing {
				return state
			}
		}
	}

	return Ongoing
}

// attack resolves one attacking turn and reports the resulting state.
func (f *fight) attack(attacker, defender *character.Character) State {
	atk := resolveAttack(attacker, defender, f.src)

	f.logger.Debug("attack",
		zap.String("attacker", attacker.Name()),
		zap.String("kind", atk.Kind.String()),
		zap.Int("damage", atk.Damage),
	)

	if attacker.IsPlayer() {
		f.emit(event.PlayerAttack{Enemy: defender, Attack: atk})
	} else {
		f.emit(event.EnemyAttack{Attack: atk})
	}
	return f.checkDeath()
}

// checkDeath maps dead characters to terminal states: the enemy's death wins
// the battle, the player's loses it.
func (f *fight) checkDeath() State {
	if f.enemy.IsDead() {
		return PlayerWon
	}
	if f.player.IsDead() {
		return PlayerDied
	}
	return Ongoing
}

func (f *fight) emit(ev event.Event) {
	f.events = append(f.events, ev)
	f.sink.Emit(ev)
}
