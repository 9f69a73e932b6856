package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/Silcet/rpg-cli/internal/game"
	"github.com/Silcet/rpg-cli/internal/game/character"
	"github.com/Silcet/rpg-cli/internal/game/event"
)

const (
	emojiChest     = "\U0001F4E6"
	emojiTombstone = "\U0001FAA6"
	emojiDead      = "\U0001F480"
	emojiBurning   = "\U0001F525"
	emojiPoisoned  = "☠️ "
)

// Options control the output style.
type Options struct {
	// Quiet prints succinct output when possible.
	Quiet bool
	// Plain prints machine-readable output without color.
	Plain bool
	// NoColor disables ANSI styling without changing the layout.
	NoColor bool
}

// Renderer writes game events and status reports to a terminal. All game
// output is structured as a character status at a location, with an
// optional event suffix.
type Renderer struct {
	out   io.Writer
	quiet bool
	plain bool
	color bool
}

// New creates a Renderer writing to out.
func New(out io.Writer, opts Options) *Renderer {
	return &Renderer{
		out:   out,
		quiet: opts.Quiet,
		plain: opts.Plain,
		color: !opts.Plain && !opts.NoColor,
	}
}

// Handle prints one game event.
func (r *Renderer) Handle(g *game.Game, ev event.Event) {
	switch e := ev.(type) {
	case event.EnemyAppears:
		r.logLine(e.Enemy, g, "")
	case event.PlayerAttack:
		if !r.quiet {
			r.battleLog(e.Enemy, r.formatAttack(e.Enemy, e.Attack))
		}
	case event.EnemyAttack:
		if !r.quiet {
			r.battleLog(g.Player, r.formatAttack(g.Player, e.Attack))
		}
	case event.StatusEffectDamage:
		if e.Target.StatusEffect != nil {
			_, emoji := statusEffectParams(e.Target.StatusEffect.Effect)
			r.battleLog(e.Target, r.formatDamage(e.Target, e.Damage, emoji))
		}
	case event.BattleWon:
		r.battleWon(g, e)
	case event.BattleLost:
		r.battleLog(g.Player, emojiDead)
	case event.ChestFound:
		r.found(emojiChest, e.Items, e.Gold)
	case event.TombstoneFound:
		r.found(emojiTombstone, e.Items, e.Gold)
	case event.Bribe:
		r.bribe(g.Player, e.Cost)
	case event.RunAway:
		if e.Success {
			r.battleLog(g.Player, "fled!")
		} else {
			r.battleLog(g.Player, "can't run!")
		}
	case event.Heal:
		r.heal(g, e)
	case event.QuestDone:
		if !r.quiet {
			fmt.Fprintf(r.out, "    %s quest completed!\n", r.paint(Yellow, fmt.Sprintf("+%dg", e.Reward)))
		}
	case event.LevelUp, event.ItemBought, event.ItemUsed:
		// Level gains print with the battle summary; purchases and item
		// uses print through their command output.
	}
}

// Status prints the hero status according to the output options.
func (r *Renderer) Status(g *game.Game) {
	switch {
	case r.plain:
		r.plainStatus(g)
	case r.quiet:
		r.shortStatus(g)
	default:
		r.longStatus(g)
	}
}

// ShopList prints the items currently on sale and the hero's funds.
func (r *Renderer) ShopList(g *game.Game) {
	for _, entry := range g.ShopList() {
		fmt.Fprintf(r.out, "    %-10s  %s\n", entry.Name, r.formatGold(entry.Cost))
	}
	fmt.Fprintf(r.out, "\n    funds: %s\n", r.formatGold(g.Gold))
}

// QuestList prints the pending and completed quests.
func (r *Renderer) QuestList(todo, done []string) {
	for _, q := range todo {
		fmt.Fprintf(r.out, "  %s %s\n", r.paint(Dim, "□"), q)
	}
	for _, q := range done {
		fmt.Fprintf(r.out, "  %s %s\n", r.paint(Green, "✔"), r.paint(Dim, q))
	}
}

// Inventory prints the hero's inventory contents.
func (r *Renderer) Inventory(g *game.Game) {
	fmt.Fprintln(r.out, formatInventory(g))
}

// Message prints a bare informational line, e.g. command errors.
func (r *Renderer) Message(text string) {
	fmt.Fprintln(r.out, text)
}

func (r *Renderer) battleWon(g *game.Game, e event.BattleWon) {
	levelStr := ""
	if e.LevelsUp > 0 {
		levelStr = " " + r.paint(Cyan, strings.Repeat("+", e.LevelsUp)+"level")
	}
	suffix := fmt.Sprintf(
		"%s%s %s",
		r.paint(Bold, fmt.Sprintf("+%dxp", e.XP)),
		levelStr,
		r.paint(Yellow, fmt.Sprintf("+%dg", e.Gold)),
	)
	r.battleLog(g.Player, suffix)
	r.shortStatus(g)
}

func (r *Renderer) bribe(player *character.Character, cost int) {
	if cost > 0 {
		r.battleLog(player, "bribed "+r.paint(Yellow, fmt.Sprintf("-%dg", cost)))
		fmt.Fprintln(r.out)
	} else {
		r.battleLog(player, "can't bribe!")
	}
}

func (r *Renderer) heal(g *game.Game, e event.Heal) {
	if e.Item != "" {
		if e.Recovered > 0 {
			r.battleLog(g.Player, r.paint(Green, fmt.Sprintf("+%dhp %s", e.Recovered, e.Item)))
		}
		if e.Healed {
			r.battleLog(g.Player, r.paint(Green, "+healed "+e.Item))
		}
		return
	}

	var parts []string
	if e.Recovered > 0 {
		parts = append(parts, fmt.Sprintf("+%dhp", e.Recovered))
	}
	if e.Healed {
		parts = append(parts, "+healed")
	}
	if len(parts) > 0 {
		r.logLine(g.Player, g, r.paint(Green, strings.Join(parts, " ")))
	}
}

func (r *Renderer) found(emoji string, items []string, gold int) {
	fmt.Fprintf(r.out, "%s ", emoji)
	if gold > 0 {
		fmt.Fprintf(r.out, "  %s", r.paint(Yellow, fmt.Sprintf("+%dg", gold)))
	}
	for _, item := range items {
		fmt.Fprintf(r.out, "  +%s", item)
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) longStatus(g *game.Game) {
	player := g.Player

	fmt.Fprintf(r.out, "%s@%s\n", r.formatCharacter(player), g.Location)
	fmt.Fprintf(r.out, "    hp:%s %d/%d\n", r.hpDisplay(player, 10), player.CurrentHP, player.MaxHP)
	fmt.Fprintf(r.out, "    xp:%s %d/%d\n", r.xpDisplay(player, 10), player.XP, player.XPForNext())
	if player.StatusEffect != nil {
		name, emoji := statusEffectParams(player.StatusEffect.Effect)
		fmt.Fprintf(r.out, "    status: %s\n", r.paint(BrightRed, fmt.Sprintf("%s %s!", emoji, name)))
	}
	fmt.Fprintf(r.out, "    att:%d   def:%d   spd:%d\n", player.Attack(), player.Deffense(), player.Speed())
	fmt.Fprintf(r.out, "    %s\n", formatEquipment(player))
	fmt.Fprintf(r.out, "    %s\n", formatInventory(g))
	fmt.Fprintf(r.out, "    %s\n", r.formatGold(g.Gold))
}

func (r *Renderer) shortStatus(g *game.Game) {
	suffix := ""
	if g.Player.StatusEffect != nil {
		_, suffix = statusEffectParams(g.Player.StatusEffect.Effect)
	}
	r.logLine(g.Player, g, suffix)
}

func (r *Renderer) plainStatus(g *game.Game) {
	player := g.Player

	statusEffect := ""
	if player.StatusEffect != nil {
		name, _ := statusEffectParams(player.StatusEffect.Effect)
		statusEffect = fmt.Sprintf("status:%s\t", name)
	}

	fmt.Fprintf(r.out,
		"%s[%d]\t@%s\thp:%d/%d\txp:%d/%d\tatt:%d\tdef:%d\tspd:%d\t%s%s\t%s\tg:%d\n",
		player.Name(), player.Level, g.Location,
		player.CurrentHP, player.MaxHP,
		player.XP, player.XPForNext(),
		player.Attack(), player.Deffense(), player.Speed(),
		statusEffect, formatEquipment(player), formatInventory(g), g.Gold,
	)
}

// logLine prints a character status at the game's location with an
// optional event suffix.
func (r *Renderer) logLine(c *character.Character, g *game.Game, suffix string) {
	fmt.Fprintf(r.out, "%s%s%s@%s %s\n",
		r.formatCharacter(c), r.hpDisplay(c, 4), r.xpDisplay(c, 4), g.Location, suffix)
}

func (r *Renderer) battleLog(c *character.Character, suffix string) {
	fmt.Fprintf(r.out, "%s%s %s\n", r.formatCharacter(c), r.hpDisplay(c, 4), suffix)
}

func (r *Renderer) formatCharacter(c *character.Character) string {
	name := fmt.Sprintf("%8s", c.Name())
	if c.IsPlayer() {
		name = r.paint(Bold, name)
	} else {
		name = r.paint(Yellow+Bold, name)
	}
	return fmt.Sprintf("%s[%d]", name, c.Level)
}

func formatEquipment(c *character.Character) string {
	var fragments []string
	if c.Sword != nil {
		fragments = append(fragments, c.Sword.String())
	}
	if c.Shield != nil {
		fragments = append(fragments, c.Shield.String())
	}
	return fmt.Sprintf("equip:{%s}", strings.Join(fragments, ","))
}

func formatInventory(g *game.Game) string {
	items := make([]string, 0, len(g.Inventory))
	for name, count := range g.Inventory {
		items = append(items, fmt.Sprintf("%sx%d", name, count))
	}
	sort.Strings(items)
	return fmt.Sprintf("item:{%s}", strings.Join(items, ","))
}

func (r *Renderer) formatAttack(receiver *character.Character, atk event.Attack) string {
	switch atk.Kind {
	case event.AttackMiss:
		return " dodged!"
	case event.AttackCritical:
		return r.formatDamage(receiver, atk.Damage, "critical!")
	case event.AttackEffect:
		name, emoji := statusEffectParams(atk.Effect)
		return r.formatDamage(receiver, atk.Damage, fmt.Sprintf("%s %s!", emoji, name))
	default:
		return r.formatDamage(receiver, atk.Damage, "")
	}
}

func (r *Renderer) formatDamage(receiver *character.Character, amount int, suffix string) string {
	color := White
	if receiver.IsPlayer() {
		color = BrightRed
	}
	return r.paint(color, fmt.Sprintf("-%dhp %s", amount, suffix))
}

func statusEffectParams(e character.StatusEffect) (name, emoji string) {
	switch e {
	case character.Burning:
		return "burning", emojiBurning
	default:
		return "poisoned", emojiPoisoned
	}
}

func (r *Renderer) hpDisplay(c *character.Character, slots int) string {
	return r.barDisplay(slots, c.CurrentHP, c.MaxHP, Green, Red)
}

func (r *Renderer) xpDisplay(c *character.Character, slots int) string {
	// enemies don't have experience
	if !c.IsPlayer() {
		return ""
	}
	return r.barDisplay(slots, c.XP, c.XPForNext(), Cyan, BrightBlack)
}

func (r *Renderer) barDisplay(slots, current, total int, currentColor, missingColor string) string {
	filled, rest := barSlots(slots, total, current)
	return fmt.Sprintf("[%s%s]",
		r.paint(currentColor, strings.Repeat("x", filled)),
		r.paint(missingColor, strings.Repeat("-", rest)),
	)
}

// barSlots maps current/total onto a fixed number of display slots,
// rounding up so any non-zero value shows at least one filled slot.
func barSlots(slots, total, current int) (filled, rest int) {
	units := int(math.Ceil(float64(current) * float64(slots) / float64(total)))
	return units, slots - units
}

func (r *Renderer) formatGold(gold int) string {
	return r.paint(Yellow, fmt.Sprintf("%dg", gold))
}

func (r *Renderer) paint(color, text string) string {
	if !r.color {
		return text
	}
	return Colorize(color, text)
}
