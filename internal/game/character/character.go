package character

import (
	"errors"
	"fmt"
	"math"
)

// ErrDead signals that the player character died. It is a normal battle
// outcome, but fatal to the current run: the orchestrator must reset
// persisted progress, never retry.
var ErrDead = errors.New("character died")

// Character is a mutable combat actor instantiated from a Class at a level.
//
// Invariant: 0 <= CurrentHP <= MaxHP. CurrentHP == 0 is the terminal dead
// state; a dead character is never mutated further.
// Invariant: at most one status effect is active at a time.
type Character struct {
	ClassName string `yaml:"class"`
	Level     int    `yaml:"level"`
	MaxHP     int    `yaml:"max_hp"`
	CurrentHP int    `yaml:"current_hp"`

	// XP is progress towards the next level; meaningful for the player only.
	XP int `yaml:"xp"`

	// StatusEffect is the active damage-over-time condition, nil when none.
	StatusEffect *Affliction `yaml:"status_effect,omitempty"`

	Sword  *Equipment `yaml:"sword,omitempty"`
	Shield *Equipment `yaml:"shield,omitempty"`

	class *Class
}

// New instantiates a character of the given class at the given level with
// full HP.
//
// Precondition: class must be non-nil; level >= 1.
func New(class *Class, level int) *Character {
	maxHP := class.HP.At(level)
	return &Character{
		ClassName: class.Name,
		Level:     level,
		MaxHP:     maxHP,
		CurrentHP: maxHP,
		class:     class,
	}
}

// NewHero instantiates a level 1 player character from the catalog's
// reserved hero class.
func NewHero(cat *Catalog) *Character {
	return New(cat.Hero(), 1)
}

// Bind resolves the character's class reference against cat. It must be
// called after deserializing a character, before any derived-stat use.
//
// Postcondition: Class() is non-nil, or an error is returned.
func (c *Character) Bind(cat *Catalog) error {
	class, ok := cat.ByName(c.ClassName)
	if !ok {
		return fmt.Errorf("character: unknown class %q", c.ClassName)
	}
	c.class = class
	return nil
}

// Class returns the character's immutable archetype.
//
// Precondition: the character was built with New or Bind has been called.
func (c *Character) Class() *Class { return c.class }

// Name returns the class name, which doubles as the character's display name.
func (c *Character) Name() string { return c.ClassName }

// IsPlayer reports whether this character is the player's hero.
func (c *Character) IsPlayer() bool { return c.ClassName == HeroName }

// Attack returns the damage-dealing stat: strength at the current level
// plus any equipped sword contribution.
func (c *Character) Attack() int {
	attack := c.class.Strength.At(c.Level)
	if c.Sword != nil {
		attack += c.Sword.Strength()
	}
	return attack
}

// Deffense returns the damage-absorbing stat contributed by an equipped
// shield; zero without one. Enemies typically have none.
func (c *Character) Deffense() int {
	if c.Shield != nil {
		return c.Shield.Strength()
	}
	return 0
}

// Speed returns the initiative/evasion stat at the current level.
func (c *Character) Speed() int {
	return c.class.Speed.At(c.Level)
}

// xpCurve parameters. The cost of level n is round(xpBase * n^xpExponent),
// which is strictly increasing in n.
const (
	xpBase     = 30.0
	xpExponent = 1.5
)

// XPForNext returns the experience required to move past the current level.
//
// Postcondition: Strictly increasing in Level.
func (c *Character) XPForNext() int {
	return int(math.Round(xpBase * math.Pow(float64(c.Level), xpExponent)))
}

// AddExperience adds xp and applies any resulting level-ups, returning the
// number of levels gained. Max HP is recomputed from the new level but
// current HP is not refilled: accumulated damage is carried through.
//
// Precondition: xp >= 0.
// Postcondition: XP < XPForNext(); MaxHP == class.hp.At(Level);
// CurrentHP is unchanged.
func (c *Character) AddExperience(xp int) int {
	c.XP += xp
	levels := 0
	for c.XP >= c.XPForNext() {
		c.XP -= c.XPForNext()
		c.Level++
		levels++
	}
	if levels > 0 {
		c.MaxHP = c.class.HP.At(c.Level)
	}
	return levels
}

// ReceiveDamage lowers current HP by damage, clamped at zero.
//
// Precondition: damage >= 0.
// Postcondition: CurrentHP >= 0.
func (c *Character) ReceiveDamage(damage int) {
	c.CurrentHP -= damage
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// RestoreHP raises current HP by amount, clamped at MaxHP, and returns the
// HP actually recovered.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHP <= MaxHP; returned value >= 0.
func (c *Character) RestoreHP(amount int) int {
	before := c.CurrentHP
	c.CurrentHP += amount
	if c.CurrentHP > c.MaxHP {
		c.CurrentHP = c.MaxHP
	}
	return c.CurrentHP - before
}

// Restore fully heals the character: HP back to max and any status effect
// cleared. Returns the HP recovered and whether an effect was cleared.
func (c *Character) Restore() (recovered int, healed bool) {
	recovered = c.RestoreHP(c.MaxHP)
	healed = c.ClearStatusEffect()
	return recovered, healed
}

// Inflict applies a status effect, overwriting any prior one. The
// magnitude dealt on each subsequent tick is fixed here.
func (c *Character) Inflict(a Affliction) {
	effect := a
	c.StatusEffect = &effect
}

// TickStatusEffect deals the recorded magnitude while an effect is active
// and returns the damage dealt, zero when no effect is active or the
// character is already dead.
//
// Postcondition: CurrentHP >= 0.
func (c *Character) TickStatusEffect() int {
	if c.StatusEffect == nil || c.IsDead() {
		return 0
	}
	damage := c.StatusEffect.Magnitude
	c.ReceiveDamage(damage)
	return damage
}

// ClearStatusEffect removes any active effect, reporting whether one was
// present.
func (c *Character) ClearStatusEffect() bool {
	had := c.StatusEffect != nil
	c.StatusEffect = nil
	return had
}

// IsDead reports whether current HP has reached zero.
func (c *Character) IsDead() bool {
	return c.CurrentHP <= 0
}
