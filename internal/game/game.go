// Package game ties the hero, the filesystem world, battles, loot and
// quests together into a single serializable session.
package game

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Silcet/rpg-cli/internal/game/battle"
	"github.com/Silcet/rpg-cli/internal/game/character"
	"github.com/Silcet/rpg-cli/internal/game/dice"
	"github.com/Silcet/rpg-cli/internal/game/event"
	"github.com/Silcet/rpg-cli/internal/game/item"
	"github.com/Silcet/rpg-cli/internal/game/location"
	"github.com/Silcet/rpg-cli/internal/game/quest"
)

// ErrItemNotFound is returned when using an item the hero does not carry.
var ErrItemNotFound = errors.New("item not found")

// ErrOnlyAtHome is returned when shopping away from the home directory.
var ErrOnlyAtHome = errors.New("shop is only allowed at home")

// Balance holds the tunable encounter knobs.
type Balance struct {
	// EnemySpawnChancePct is the per-step chance of an encounter away from home.
	EnemySpawnChancePct int
	// ChestChancePct is the per-inspect chance of finding a treasure chest.
	ChestChancePct int
}

// DefaultBalance returns the standard difficulty.
func DefaultBalance() Balance {
	return Balance{EnemySpawnChancePct: 30, ChestChancePct: 20}
}

// Tombstone holds what a dead hero dropped at the place of death.
type Tombstone struct {
	ID    string         `yaml:"id"`
	Gold  int            `yaml:"gold"`
	Items map[string]int `yaml:"items,omitempty"`
}

// Options carries the runtime dependencies of a Game. Zero-valued fields
// fall back to sensible defaults.
type Options struct {
	Catalog *character.Catalog
	Source  dice.Source
	Logger  *zap.Logger
	Sink    event.Sink
	Balance Balance
}

func (o Options) withDefaults() Options {
	if o.Catalog == nil {
		o.Catalog = character.DefaultCatalog()
	}
	if o.Source == nil {
		o.Source = dice.NewCryptoSource()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Sink == nil {
		o.Sink = event.Discard
	}
	if o.Balance == (Balance{}) {
		o.Balance = DefaultBalance()
	}
	return o
}

// Game is the complete session state. The exported fields form the saved
// snapshot; runtime dependencies are rewired on load via Hydrate.
type Game struct {
	Player     *character.Character `yaml:"player"`
	Gold       int                  `yaml:"gold"`
	Location   location.Location    `yaml:"location"`
	Inventory  map[string]int       `yaml:"inventory"`
	Tombstones map[string]Tombstone `yaml:"tombstones,omitempty"`
	Quests     *quest.Log           `yaml:"quests"`

	catalog *character.Catalog
	src     dice.Source
	logger  *zap.Logger
	sink    event.Sink
	balance Balance
}

// New starts a fresh session with a level 1 hero at the given home directory.
func New(home string, opts Options) *Game {
	opts = opts.withDefaults()
	g := &Game{
		Player:     character.NewHero(opts.Catalog),
		Location:   location.Home(home),
		Inventory:  make(map[string]int),
		Tombstones: make(map[string]Tombstone),
		Quests:     quest.NewLog(),
	}
	g.wire(opts)
	return g
}

// Hydrate rewires runtime dependencies after deserialization.
//
// Precondition: g was produced by unmarshalling a saved snapshot.
// Postcondition: The player is bound to its class and all maps are non-nil.
func (g *Game) Hydrate(opts Options) error {
	opts = opts.withDefaults()
	if g.Player == nil {
		return errors.New("game: snapshot has no player")
	}
	if err := g.Player.Bind(opts.Catalog); err != nil {
		return err
	}
	if g.Inventory == nil {
		g.Inventory = make(map[string]int)
	}
	if g.Tombstones == nil {
		g.Tombstones = make(map[string]Tombstone)
	}
	if g.Quests == nil {
		g.Quests = quest.NewLog()
	}
	g.wire(opts)
	return nil
}

func (g *Game) wire(opts Options) {
	g.catalog = opts.Catalog
	g.src = opts.Source
	g.logger = opts.Logger
	g.sink = opts.Sink
	g.balance = opts.Balance
}

// Go walks the hero one directory at a time towards dest, possibly engaging
// enemies along the way. Reaching home fully restores the hero.
//
// Postcondition: On character.ErrDead the hero died mid-journey and the
// location points at the place of death; any other return leaves the hero
// at dest.
func (g *Game) Go(dest location.Location, run, bribe bool) error {
	for {
		next, moved := g.Location.WalkTowards(dest)
		if !moved {
			break
		}
		g.Location = next

		if g.Location.IsHome() {
			g.visitHome()
			continue
		}
		enemy, err := g.MaybeSpawnEnemy()
		if err != nil {
			return err
		}
		if enemy == nil {
			continue
		}
		if err := g.Battle(enemy, run, bribe); err != nil {
			return err
		}
	}
	g.completeQuests(g.Quests.LocationVisited(g.Location.Distance()))
	return nil
}

// Jump moves the hero directly to dest without spawning enemies or
// healing, intended for shell integration.
func (g *Game) Jump(dest location.Location) {
	g.Location = dest
}

// visitHome rests the hero at home.
func (g *Game) visitHome() {
	recovered, healed := g.Player.Restore()
	if recovered > 0 || healed {
		g.emit(event.Heal{Recovered: recovered, Healed: healed})
	}
}

// MaybeSpawnEnemy rolls for an encounter at the current location. There are
// no encounters at home. The enemy's level grows with the distance from home.
func (g *Game) MaybeSpawnEnemy() (*character.Character, error) {
	if g.Location.IsHome() {
		return nil, nil
	}
	if !dice.Percent(g.balance.EnemySpawnChancePct, g.src) {
		return nil, nil
	}

	d := g.Location.Distance()
	class, err := g.catalog.RandomEnemy(d, g.src)
	if err != nil {
		return nil, err
	}
	level := d.Magnitude/2 + dice.Range(-1, 1, g.src)
	if level < 1 {
		level = 1
	}
	enemy := character.New(class, level)
	g.logger.Debug("enemy spawned",
		zap.String("class", class.Name),
		zap.Int("level", level),
		zap.Stringer("distance", d.Tier),
	)
	g.emit(event.EnemyAppears{Enemy: enemy})
	return enemy, nil
}

// Battle resolves a fight against enemy, paying out rewards on victory.
//
// Postcondition: Returns character.ErrDead iff the hero died; the caller
// decides whether to Reset. Flee and bribe outcomes return nil.
func (g *Game) Battle(enemy *character.Character, run, bribe bool) error {
	opts := battle.Options{Run: run, Bribe: bribe, Gold: g.Gold}
	result := battle.Fight(g.Player, enemy, opts, g.src, g.sink, g.logger)

	switch result.State {
	case battle.PlayerWon:
		xp := battle.XPReward(enemy)
		gold := battle.GoldReward(enemy)
		levels := g.Player.AddExperience(xp)
		g.Gold += gold
		g.emit(event.BattleWon{XP: xp, LevelsUp: levels, Gold: gold})
		if levels > 0 {
			g.emit(event.LevelUp{Count: levels})
			g.completeQuests(g.Quests.LevelReached(g.Player.Level))
		}
		g.completeQuests(g.Quests.BattleWon(enemy))
	case battle.PlayerBribed:
		g.Gold -= result.BribeCost
	case battle.PlayerDied:
		g.emit(event.BattleLost{})
		return character.ErrDead
	}
	return nil
}

// Inspect searches the current location for tombstones and treasure chests.
func (g *Game) Inspect() {
	if ts, ok := g.Tombstones[g.Location.Path()]; ok {
		delete(g.Tombstones, g.Location.Path())
		g.Gold += ts.Gold
		for name, qty := range ts.Items {
			g.Inventory[name] += qty
		}
		g.emit(event.TombstoneFound{Items: itemNames(ts.Items), Gold: ts.Gold})
	}

	if g.Location.IsHome() {
		return
	}
	if !dice.Percent(g.balance.ChestChancePct, g.src) {
		return
	}
	gold, items := rollChest(g.Location.Distance(), g.src)
	g.Gold += gold
	for name, qty := range items {
		g.Inventory[name] += qty
	}
	g.emit(event.ChestFound{Items: itemNames(items), Gold: gold})
}

// ShopList returns what the shop currently offers: consumables always,
// equipment only when it would be an upgrade.
//
// Precondition: Only meaningful at home; callers gate on Location.IsHome.
func (g *Game) ShopList() []item.Entry {
	var entries []item.Entry
	for _, e := range item.List(g.Player.Level) {
		if kind, isEquipment := equipmentKind(e.Name); isEquipment {
			piece := character.NewEquipment(kind, g.Player.Level)
			if !piece.IsUpgradeFrom(g.equipped(kind)) {
				continue
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// Buy purchases one item from the shop. Equipment is equipped immediately;
// consumables go to the inventory.
//
// Postcondition: On success the cost has been deducted and an ItemBought
// event emitted. Returns ErrOnlyAtHome away from home, item.ErrNotEnoughGold
// or item.ErrItemNotAvailable otherwise.
func (g *Game) Buy(name string) error {
	if !g.Location.IsHome() {
		return ErrOnlyAtHome
	}
	cost, err := item.Cost(name, g.Player.Level)
	if err != nil {
		return err
	}
	if g.Gold < cost {
		return item.ErrNotEnoughGold
	}

	if kind, isEquipment := equipmentKind(name); isEquipment {
		piece := character.NewEquipment(kind, g.Player.Level)
		if !piece.IsUpgradeFrom(g.equipped(kind)) {
			return item.ErrItemNotAvailable
		}
		g.equip(kind, piece)
	} else {
		g.Inventory[name]++
	}

	g.Gold -= cost
	g.emit(event.ItemBought{Item: name, Cost: cost})
	g.completeQuests(g.Quests.ItemBought(name))
	return nil
}

// UseItem consumes one inventory item by its canonical name. Potions heal
// and cure status effects; escapes teleport the hero home without combat.
func (g *Game) UseItem(name string) error {
	if g.Inventory[name] == 0 {
		return ErrItemNotFound
	}

	switch name {
	case item.Potion:
		recovered := g.Player.RestoreHP(item.PotionRestore(g.Player.Level))
		healed := g.Player.ClearStatusEffect()
		g.emit(event.Heal{Item: name, Recovered: recovered, Healed: healed})
	case item.Escape:
		g.Location = g.Location.HomeLocation()
	default:
		return ErrItemNotFound
	}

	g.Inventory[name]--
	if g.Inventory[name] == 0 {
		delete(g.Inventory, name)
	}
	g.emit(event.ItemUsed{Item: name})
	g.completeQuests(g.Quests.ItemUsed(name))
	return nil
}

// AddItem puts qty units of an item into the inventory.
func (g *Game) AddItem(name string, qty int) {
	if qty <= 0 {
		return
	}
	g.Inventory[name] += qty
}

// Reset starts over with a fresh hero after death (or on request). The dead
// hero's gold and inventory are left in a tombstone at the current location;
// quests and existing tombstones survive across heroes.
func (g *Game) Reset() {
	if g.Gold > 0 || len(g.Inventory) > 0 {
		items := g.Inventory
		if len(items) == 0 {
			items = nil
		}
		g.Tombstones[g.Location.Path()] = Tombstone{
			ID:    uuid.NewString(),
			Gold:  g.Gold,
			Items: items,
		}
		g.logger.Debug("tombstone dropped",
			zap.String("location", g.Location.Path()),
			zap.Int("gold", g.Gold),
		)
	}

	g.Player = character.NewHero(g.catalog)
	g.Gold = 0
	g.Inventory = make(map[string]int)
	g.Location = g.Location.HomeLocation()
}

func (g *Game) completeQuests(completed []*quest.Quest) {
	for _, q := range completed {
		g.Gold += q.Reward
		g.emit(event.QuestDone{Quest: q.Name, Reward: q.Reward})
	}
}

func (g *Game) emit(ev event.Event) {
	g.sink.Emit(ev)
}

func (g *Game) equipped(kind character.EquipmentKind) *character.Equipment {
	if kind == character.KindSword {
		return g.Player.Sword
	}
	return g.Player.Shield
}

func (g *Game) equip(kind character.EquipmentKind, piece *character.Equipment) {
	if kind == character.KindSword {
		g.Player.Sword = piece
	} else {
		g.Player.Shield = piece
	}
}

func equipmentKind(name string) (character.EquipmentKind, bool) {
	switch name {
	case item.Sword:
		return character.KindSword, true
	case item.Shield:
		return character.KindShield, true
	default:
		return "", false
	}
}

func itemNames(items map[string]int) []string {
	if len(items) == 0 {
		return nil
	}
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
