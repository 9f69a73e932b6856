package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Silcet/rpg-cli/internal/game"
	"github.com/Silcet/rpg-cli/internal/game/character"
	"github.com/Silcet/rpg-cli/internal/game/event"
	"github.com/Silcet/rpg-cli/internal/game/location"
	"github.com/Silcet/rpg-cli/internal/render"
)

// scriptSrc replays a fixed roll sequence, then keeps returning def.
type scriptSrc struct {
	vals []int
	def  int
	i    int
}

func (s *scriptSrc) Intn(n int) int {
	v := s.def
	if s.i < len(s.vals) {
		v = s.vals[s.i]
		s.i++
	}
	return v % n
}

type recorder struct {
	events []event.Event
}

func (r *recorder) Emit(ev event.Event) { r.events = append(r.events, ev) }

func (r *recorder) has(match func(event.Event) bool) bool {
	for _, ev := range r.events {
		if match(ev) {
			return true
		}
	}
	return false
}

const testCatalog = `
classes:
  - name: hero
    category: player
    hp: {base: 100, increase: 10}
    strength: {base: 50, increase: 5}
    speed: {base: 10, increase: 1}
  - name: critter
    category: common
    hp: {base: 5, increase: 1}
    strength: {base: 1, increase: 1}
    speed: {base: 1, increase: 1}
  - name: ogre
    category: rare
    hp: {base: 200, increase: 10}
    strength: {base: 500, increase: 10}
    speed: {base: 20, increase: 1}
  - name: wisp
    category: legendary
    hp: {base: 1, increase: 1}
    strength: {base: 1, increase: 1}
    speed: {base: 1, increase: 1}
`

// newCommandGame builds a game rooted at a fresh home with one "cave"
// subdirectory, spawning an enemy on every step away from home.
func newCommandGame(t *testing.T, src *scriptSrc) (*game.Game, *recorder) {
	t.Helper()
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "cave"), 0o755))

	cat, err := character.LoadCatalog([]byte(testCatalog))
	require.NoError(t, err)

	rec := &recorder{}
	g := game.New(home, game.Options{
		Catalog: cat,
		Source:  src,
		Sink:    rec,
		Balance: game.Balance{EnemySpawnChancePct: 100, ChestChancePct: -1},
	})
	return g, rec
}

func newTestRenderer() *render.Renderer {
	return render.New(io.Discard, render.Options{NoColor: true})
}

func TestLiftFlags(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, nil},
		{"flags first", []string{"--run", "some/dir"}, []string{"--run", "some/dir"}},
		{"flags after positional", []string{"some/dir", "--run", "--bribe"}, []string{"--run", "--bribe", "some/dir"}},
		{"mixed", []string{"-f", "some/dir", "--run"}, []string{"-f", "--run", "some/dir"}},
		{"terminator stays positional", []string{"--", "some/dir"}, []string{"--", "some/dir"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, liftFlags(tc.in))
		})
	}
}

func TestChangeDir_RunFlagAfterDestination(t *testing.T) {
	// Rolls: enemy pick (critter), level offset, flee check.
	src := &scriptSrc{vals: []int{0, 0, 0}}
	g, rec := newCommandGame(t, src)

	code := changeDir(g, newTestRenderer(), []string{"cave", "--run"})

	assert.Zero(t, code)
	assert.Equal(t, "cave", filepath.Base(g.Location.Path()))
	assert.Equal(t, g.Player.MaxHP, g.Player.CurrentHP, "a fled battle deals no damage")
	assert.True(t, rec.has(func(ev event.Event) bool {
		ra, ok := ev.(event.RunAway)
		return ok && ra.Success
	}))
	assert.False(t, rec.has(func(ev event.Event) bool {
		_, ok := ev.(event.BattleWon)
		return ok
	}))
}

func TestChangeDir_ForceFlagAfterDestination(t *testing.T) {
	g, rec := newCommandGame(t, &scriptSrc{def: 0})

	code := changeDir(g, newTestRenderer(), []string{"cave", "-f"})

	assert.Zero(t, code)
	assert.Equal(t, "cave", filepath.Base(g.Location.Path()))
	assert.Empty(t, rec.events, "a forced move never rolls for encounters")
}

func TestChangeDir_BadDestination(t *testing.T) {
	g, _ := newCommandGame(t, &scriptSrc{def: 0})
	code := changeDir(g, newTestRenderer(), []string{"no/such/dir"})
	assert.Equal(t, 1, code)
}

func TestBattle_NoEnemyAtHome(t *testing.T) {
	g, rec := newCommandGame(t, &scriptSrc{def: 0})

	code := battle(g, zap.NewNop(), nil)

	assert.Zero(t, code)
	assert.Empty(t, rec.events)
}

func TestBattle_VictoryAwayFromHome(t *testing.T) {
	// Rolls: enemy pick (critter), level offset, crit check.
	src := &scriptSrc{vals: []int{0, 0, 99}}
	g, rec := newCommandGame(t, src)

	dest, err := location.From("cave", g.Location)
	require.NoError(t, err)
	g.Jump(dest)

	code := battle(g, zap.NewNop(), nil)

	assert.Zero(t, code)
	assert.True(t, rec.has(func(ev event.Event) bool {
		_, ok := ev.(event.BattleWon)
		return ok
	}))
}

func TestBattle_DeathResetsHero(t *testing.T) {
	// Rolls: enemy pick (ogre), level offset, crit check.
	src := &scriptSrc{vals: []int{9, 0, 99}}
	g, rec := newCommandGame(t, src)
	g.Gold = 100

	dest, err := location.From("cave", g.Location)
	require.NoError(t, err)
	g.Jump(dest)

	code := battle(g, zap.NewNop(), nil)

	assert.Equal(t, 1, code)
	assert.True(t, g.Location.IsHome(), "death starts the new hero at home")
	assert.Zero(t, g.Gold)
	assert.True(t, rec.has(func(ev event.Event) bool {
		_, ok := ev.(event.BattleLost)
		return ok
	}))
}
