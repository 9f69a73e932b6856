// Package quest tracks the hero's todo list. Quests advance in response
// to game events and pay a gold reward exactly once when completed.
package quest

import (
	"github.com/Silcet/rpg-cli/internal/game/character"
	"github.com/Silcet/rpg-cli/internal/game/location"
)

// Kind identifies what a quest counts.
type Kind string

const (
	WinBattles      Kind = "win-battles"
	ReachLevel      Kind = "reach-level"
	BuySword        Kind = "buy-sword"
	UsePotion       Kind = "use-potion"
	VisitFar        Kind = "visit-far"
	DefeatLegendary Kind = "defeat-legendary"
)

// Quest is a single todo entry.
//
// Invariant: Progress never exceeds Goal, and Done is set exactly when
// Progress reaches Goal.
type Quest struct {
	Kind     Kind   `yaml:"kind"`
	Name     string `yaml:"name"`
	Goal     int    `yaml:"goal"`
	Progress int    `yaml:"progress"`
	Reward   int    `yaml:"reward"`
	Done     bool   `yaml:"done"`
}

// advance moves the quest towards its goal and reports whether this
// call completed it. Completed quests ignore further progress.
func (q *Quest) advance(amount int) bool {
	if q.Done {
		return false
	}
	q.Progress += amount
	if q.Progress >= q.Goal {
		q.Progress = q.Goal
		q.Done = true
		return true
	}
	return false
}

// Log holds every quest, done or not.
type Log struct {
	Quests []*Quest `yaml:"quests"`
}

// NewLog returns the default quest log handed to a fresh hero.
func NewLog() *Log {
	return &Log{
		Quests: []*Quest{
			{Kind: WinBattles, Name: "win 10 battles", Goal: 10, Reward: 1000},
			{Kind: ReachLevel, Name: "reach level 5", Goal: 5, Reward: 500},
			{Kind: BuySword, Name: "buy a sword", Goal: 1, Reward: 500},
			{Kind: UsePotion, Name: "use a potion", Goal: 1, Reward: 200},
			{Kind: VisitFar, Name: "visit a distant location", Goal: 1, Reward: 1000},
			{Kind: DefeatLegendary, Name: "defeat a legendary creature", Goal: 1, Reward: 5000},
		},
	}
}

// BattleWon records a victory over the given enemy.
// Postcondition: the returned slice holds the quests this event completed.
func (l *Log) BattleWon(enemy *character.Character) []*Quest {
	var completed []*Quest
	legendary := enemy.Class() != nil && enemy.Class().Category == character.CategoryLegendary
	for _, q := range l.Quests {
		switch q.Kind {
		case WinBattles:
			if q.advance(1) {
				completed = append(completed, q)
			}
		case DefeatLegendary:
			if legendary && q.advance(1) {
				completed = append(completed, q)
			}
		}
	}
	return completed
}

// LevelReached records the hero's current level after a level up.
func (l *Log) LevelReached(level int) []*Quest {
	var completed []*Quest
	for _, q := range l.Quests {
		if q.Kind != ReachLevel || q.Done {
			continue
		}
		if level > q.Progress {
			if q.advance(level - q.Progress) {
				completed = append(completed, q)
			}
		}
	}
	return completed
}

// ItemBought records a shop purchase by item name.
func (l *Log) ItemBought(name string) []*Quest {
	return l.advanceKindIf(BuySword, name == "sword")
}

// ItemUsed records consuming an inventory item by name.
func (l *Log) ItemUsed(name string) []*Quest {
	return l.advanceKindIf(UsePotion, name == "potion")
}

// LocationVisited records arriving at a location at the given distance
// from home.
func (l *Log) LocationVisited(d location.Distance) []*Quest {
	return l.advanceKindIf(VisitFar, d.Tier == location.Far)
}

func (l *Log) advanceKindIf(kind Kind, match bool) []*Quest {
	if !match {
		return nil
	}
	var completed []*Quest
	for _, q := range l.Quests {
		if q.Kind == kind && q.advance(1) {
			completed = append(completed, q)
		}
	}
	return completed
}

// List splits the log into pending and completed quest names, in the
// order they were added.
func (l *Log) List() (todo []string, done []string) {
	for _, q := range l.Quests {
		if q.Done {
			done = append(done, q.Name)
		} else {
			todo = append(todo, q.Name)
		}
	}
	return todo, done
}
