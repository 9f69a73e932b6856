// Package main provides the rpg-cli binary: your filesystem as a dungeon.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Silcet/rpg-cli/internal/config"
	"github.com/Silcet/rpg-cli/internal/game"
	"github.com/Silcet/rpg-cli/internal/game/character"
	"github.com/Silcet/rpg-cli/internal/game/dice"
	"github.com/Silcet/rpg-cli/internal/game/event"
	"github.com/Silcet/rpg-cli/internal/game/item"
	"github.com/Silcet/rpg-cli/internal/game/location"
	"github.com/Silcet/rpg-cli/internal/observability"
	"github.com/Silcet/rpg-cli/internal/render"
	"github.com/Silcet/rpg-cli/internal/storage"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("rpg-cli", flag.ExitOnError)
	quiet := global.Bool("quiet", false, "print succinct output when possible")
	global.BoolVar(quiet, "q", false, "shorthand for -quiet")
	plain := global.Bool("plain", false, "print machine-readable output when possible")
	global.Usage = usage(global)
	if err := global.Parse(args); err != nil {
		return 1
	}

	cmd, cmdArgs := "stat", global.Args()
	if len(cmdArgs) > 0 {
		cmd, cmdArgs = cmdArgs[0], cmdArgs[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	renderer := render.New(os.Stdout, render.Options{Quiet: *quiet, Plain: *plain})
	datafile := storage.NewDatafile(cfg.Data.Dir, logger)

	// reset --hard is a special case: it must work even when the saved
	// game can no longer be deserialized, e.g. after incompatible changes.
	if cmd == "reset" && hasFlag(cmdArgs, "hard") {
		if err := datafile.Remove(); err != nil {
			logger.Error("removing datafile", zap.Error(err))
		}
	}

	// The sink closure renders against the game declared below; by the
	// time any event fires the variable is assigned.
	var g *game.Game
	sink := event.SinkFunc(func(ev event.Event) { renderer.Handle(g, ev) })

	opts := game.Options{
		Source:  dice.NewLoggedSource(dice.NewCryptoSource(), logger),
		Logger:  logger,
		Sink:    sink,
		Balance: cfg.Balance.Balance(),
	}

	g, err = loadGame(datafile, opts)
	if err != nil {
		log.Fatalf("loading game: %v", err)
	}

	exitCode := dispatch(g, renderer, logger, cmd, cmdArgs)

	if err := datafile.Save(g); err != nil {
		log.Fatalf("saving game: %v", err)
	}
	return exitCode
}

func loadGame(datafile *storage.Datafile, opts game.Options) (*game.Game, error) {
	g, err := datafile.Load()
	if errors.Is(err, storage.ErrNotFound) {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		return game.New(home, opts), nil
	}
	if err != nil {
		return nil, err
	}
	if err := g.Hydrate(opts); err != nil {
		return nil, err
	}
	return g, nil
}

func dispatch(g *game.Game, renderer *render.Renderer, logger *zap.Logger, cmd string, args []string) int {
	switch cmd {
	case "stat", "s", "status":
		renderer.Status(g)
	case "cd":
		return changeDir(g, renderer, args)
	case "ls":
		g.Inspect()
	case "battle":
		return battle(g, logger, args)
	case "pwd":
		renderer.Message(g.Location.Path())
	case "buy", "b":
		shop(g, renderer, args)
	case "use", "u":
		useItem(g, renderer, args)
	case "todo", "t":
		todo, done := g.Quests.List()
		renderer.QuestList(todo, done)
	case "reset":
		g.Reset()
	default:
		renderer.Message(fmt.Sprintf("unknown command %q", cmd))
		return 1
	}
	return 0
}

// changeDir moves the hero to the destination, possibly engaging in
// combat along the way.
func changeDir(g *game.Game, renderer *render.Renderer, args []string) int {
	fs := flag.NewFlagSet("cd", flag.ExitOnError)
	run := fs.Bool("run", false, "attempt to avoid battles by running away")
	bribe := fs.Bool("bribe", false, "attempt to avoid battles by bribing the enemy")
	force := fs.Bool("force", false, "move without spawning enemies, for shell integration")
	fs.BoolVar(force, "f", false, "shorthand for -force")
	fs.Parse(liftFlags(args))

	raw := "~"
	if fs.NArg() > 0 {
		raw = fs.Arg(0)
	}
	dest, err := location.From(raw, g.Location)
	if err != nil {
		renderer.Message("No such file or directory")
		return 1
	}

	if *force {
		g.Jump(dest)
		return 0
	}
	if err := g.Go(dest, *run, *bribe); errors.Is(err, character.ErrDead) {
		g.Reset()
		return 1
	}
	return 0
}

// battle potentially starts a fight at the current location, independently
// from the hero's movement.
func battle(g *game.Game, logger *zap.Logger, args []string) int {
	fs := flag.NewFlagSet("battle", flag.ExitOnError)
	run := fs.Bool("run", false, "attempt to avoid battles by running away")
	bribe := fs.Bool("bribe", false, "attempt to avoid battles by bribing the enemy")
	fs.Parse(liftFlags(args))

	enemy, err := g.MaybeSpawnEnemy()
	if err != nil {
		logger.Error("spawning enemy", zap.Error(err))
		return 1
	}
	if enemy == nil {
		return 0
	}
	if err := g.Battle(enemy, *run, *bribe); errors.Is(err, character.ErrDead) {
		g.Reset()
		return 1
	}
	return 0
}

// shop buys an item, or lists the items for sale when no name is given.
func shop(g *game.Game, renderer *render.Renderer, args []string) {
	if len(args) == 0 {
		if g.Location.IsHome() {
			renderer.ShopList(g)
		} else {
			renderer.Message("Shop is only allowed at home.")
		}
		return
	}

	switch err := g.Buy(item.Sanitize(args[0])); {
	case errors.Is(err, game.ErrOnlyAtHome):
		renderer.Message("Shop is only allowed at home.")
	case errors.Is(err, item.ErrNotEnoughGold):
		renderer.Message("Not enough gold.")
	case errors.Is(err, item.ErrItemNotAvailable):
		renderer.Message("Item not available.")
	}
}

// useItem consumes an inventory item, or lists the inventory when no name
// is given.
func useItem(g *game.Game, renderer *render.Renderer, args []string) {
	if len(args) == 0 {
		renderer.Inventory(g)
		return
	}
	if err := g.UseItem(item.Sanitize(args[0])); errors.Is(err, game.ErrItemNotFound) {
		renderer.Message("Item not found.")
	}
}

// liftFlags reorders args so that flags appearing after a positional still
// parse: the stdlib FlagSet stops at the first non-flag argument, but
// "cd some/dir --run" must mean the same as "cd --run some/dir".
func liftFlags(args []string) []string {
	var flags, rest []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") && a != "-" && a != "--" {
			flags = append(flags, a)
		} else {
			rest = append(rest, a)
		}
	}
	return append(flags, rest...)
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == "-"+name || a == "--"+name {
			return true
		}
	}
	return false
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		out := fs.Output()
		fmt.Fprintln(out, "rpg-cli -- your filesystem as a dungeon")
		fmt.Fprintln(out, "\nusage: rpg-cli [-quiet] [-plain] <command> [args]")
		fmt.Fprintln(out, `
commands:
  stat              display the hero's status [default]
  cd <dir>          move the hero, potentially initiating battles on the way
  ls                inspect the location for chests and tombstones
  battle            potentially initiate a battle at the current location
  buy [item]        buy an item from the shop, or list what is for sale
  use [item]        use an inventory item, or list the inventory
  todo              print the quest todo list
  pwd               print the hero's current location
  reset [--hard]    start over; --hard also wipes the data files`)
		fs.PrintDefaults()
	}
}
