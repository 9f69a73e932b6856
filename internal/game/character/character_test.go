package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/Silcet/rpg-cli/internal/game/character"
)

func newHero(t *testing.T) *character.Character {
	t.Helper()
	return character.NewHero(character.DefaultCatalog())
}

func TestNew_FullHPAtLevel(t *testing.T) {
	cat := character.DefaultCatalog()
	rat, ok := cat.ByName("rat")
	require.True(t, ok)

	c := character.New(rat, 3)
	assert.Equal(t, rat.HP.At(3), c.MaxHP)
	assert.Equal(t, c.MaxHP, c.CurrentHP)
	assert.False(t, c.IsPlayer())
	assert.False(t, c.IsDead())
}

func TestNewHero_Level1(t *testing.T) {
	hero := newHero(t)
	assert.True(t, hero.IsPlayer())
	assert.Equal(t, 1, hero.Level)
	assert.Equal(t, 37, hero.MaxHP) // 30 + 1*7
	assert.Equal(t, 0, hero.XP)
}

func TestReceiveDamage_ClampsAtZero(t *testing.T) {
	hero := newHero(t)
	hero.ReceiveDamage(hero.MaxHP * 3)
	assert.Equal(t, 0, hero.CurrentHP)
	assert.True(t, hero.IsDead())
}

func TestRestoreHP_ClampsAtMax(t *testing.T) {
	hero := newHero(t)
	hero.ReceiveDamage(10)

	recovered := hero.RestoreHP(1000)
	assert.Equal(t, 10, recovered)
	assert.Equal(t, hero.MaxHP, hero.CurrentHP)
}

// TestHP_AlwaysClamped drives an arbitrary damage/heal sequence and checks
// the invariant 0 <= CurrentHP <= MaxHP after every application.
func TestHP_AlwaysClamped(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hero := character.NewHero(character.DefaultCatalog())
		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			amount := rapid.IntRange(0, 200).Draw(rt, "amount")
			if rapid.Bool().Draw(rt, "heal") {
				hero.RestoreHP(amount)
			} else {
				hero.ReceiveDamage(amount)
			}
			assert.GreaterOrEqual(rt, hero.CurrentHP, 0)
			assert.LessOrEqual(rt, hero.CurrentHP, hero.MaxHP)
		}
	})
}

func TestXPForNext_StrictlyIncreasing(t *testing.T) {
	hero := newHero(t)
	prev := 0
	for level := 1; level <= 100; level++ {
		hero.Level = level
		cost := hero.XPForNext()
		assert.Greater(t, cost, prev, "level %d", level)
		prev = cost
	}
}

func TestAddExperience_LevelUp(t *testing.T) {
	hero := newHero(t)
	hero.ReceiveDamage(20)
	hpBefore := hero.CurrentHP
	cost := hero.XPForNext()

	levels := hero.AddExperience(cost + 5)

	assert.Equal(t, 1, levels)
	assert.Equal(t, 2, hero.Level)
	assert.Equal(t, 5, hero.XP)
	assert.Equal(t, 44, hero.MaxHP) // 30 + 2*7
	// Damage carries through a level-up; HP is not refilled.
	assert.Equal(t, hpBefore, hero.CurrentHP)
}

func TestAddExperience_MultipleLevels(t *testing.T) {
	hero := newHero(t)
	levels := hero.AddExperience(10000)
	assert.Greater(t, levels, 1)
	assert.Less(t, hero.XP, hero.XPForNext())
}

func TestAddExperience_BelowThreshold(t *testing.T) {
	hero := newHero(t)
	levels := hero.AddExperience(hero.XPForNext() - 1)
	assert.Equal(t, 0, levels)
	assert.Equal(t, 1, hero.Level)
}

func TestInflict_OverwritesPriorEffect(t *testing.T) {
	hero := newHero(t)

	hero.Inflict(character.Affliction{Effect: character.Poisoned, Magnitude: 5})
	require.NotNil(t, hero.StatusEffect)
	assert.Equal(t, character.Poisoned, hero.StatusEffect.Effect)

	hero.Inflict(character.Affliction{Effect: character.Burning, Magnitude: 2})
	require.NotNil(t, hero.StatusEffect)
	assert.Equal(t, character.Burning, hero.StatusEffect.Effect)
	assert.Equal(t, 2, hero.StatusEffect.Magnitude)
}

// TestTickStatusEffect_PersistsUntilCleared inflicts poison magnitude 5 on a
// 20 HP target and checks each tick deals exactly 5 until the effect is
// cleared or the holder dies.
func TestTickStatusEffect_PersistsUntilCleared(t *testing.T) {
	cat := character.DefaultCatalog()
	wolf, ok := cat.ByName("wolf")
	require.True(t, ok)

	c := character.New(wolf, 1)
	c.CurrentHP = 20
	c.Inflict(character.Affliction{Effect: character.Poisoned, Magnitude: 5})

	for want := 15; want >= 0; want -= 5 {
		dmg := c.TickStatusEffect()
		assert.Equal(t, 5, dmg)
		assert.Equal(t, want, c.CurrentHP)
	}

	// Dead: the effect no longer ticks.
	assert.True(t, c.IsDead())
	assert.Equal(t, 0, c.TickStatusEffect())
}

func TestTickStatusEffect_NoEffect(t *testing.T) {
	hero := newHero(t)
	assert.Equal(t, 0, hero.TickStatusEffect())
	assert.Equal(t, hero.MaxHP, hero.CurrentHP)
}

func TestRestore_HealsAndClears(t *testing.T) {
	hero := newHero(t)
	hero.ReceiveDamage(15)
	hero.Inflict(character.Affliction{Effect: character.Burning, Magnitude: 3})

	recovered, healed := hero.Restore()
	assert.Equal(t, 15, recovered)
	assert.True(t, healed)
	assert.Nil(t, hero.StatusEffect)
	assert.Equal(t, hero.MaxHP, hero.CurrentHP)
}

func TestAttackAndDeffense_Equipment(t *testing.T) {
	hero := newHero(t)
	base := hero.Attack()
	assert.Equal(t, 15, base) // 12 + 1*3
	assert.Equal(t, 0, hero.Deffense())

	hero.Sword = character.NewEquipment(character.KindSword, 2)
	hero.Shield = character.NewEquipment(character.KindShield, 1)

	assert.Equal(t, base+20, hero.Attack()) // sword[2] = 10 + 2*5
	assert.Equal(t, 15, hero.Deffense())    // shield[1] = 10 + 1*5
}

func TestEquipment_IsUpgradeFrom(t *testing.T) {
	s2 := character.NewEquipment(character.KindSword, 2)
	s3 := character.NewEquipment(character.KindSword, 3)

	assert.True(t, s2.IsUpgradeFrom(nil))
	assert.True(t, s3.IsUpgradeFrom(s2))
	assert.False(t, s2.IsUpgradeFrom(s3))
	assert.False(t, s2.IsUpgradeFrom(s2))
}

func TestCharacter_YAMLRoundTrip(t *testing.T) {
	cat := character.DefaultCatalog()
	hero := character.NewHero(cat)
	hero.AddExperience(40)
	hero.ReceiveDamage(12)
	hero.Inflict(character.Affliction{Effect: character.Poisoned, Magnitude: 5})
	hero.Sword = character.NewEquipment(character.KindSword, 2)

	data, err := yaml.Marshal(hero)
	require.NoError(t, err)

	var back character.Character
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.NoError(t, back.Bind(cat))

	assert.Equal(t, hero.Level, back.Level)
	assert.Equal(t, hero.XP, back.XP)
	assert.Equal(t, hero.CurrentHP, back.CurrentHP)
	assert.Equal(t, hero.MaxHP, back.MaxHP)
	require.NotNil(t, back.StatusEffect)
	assert.Equal(t, character.Poisoned, back.StatusEffect.Effect)
	assert.Equal(t, hero.Attack(), back.Attack())
}

func TestBind_UnknownClass(t *testing.T) {
	c := &character.Character{ClassName: "gremlin"}
	assert.Error(t, c.Bind(character.DefaultCatalog()))
}
