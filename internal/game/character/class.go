package character

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Silcet/rpg-cli/internal/game/dice"
	"github.com/Silcet/rpg-cli/internal/game/location"
)

// HeroName is the name of the reserved player class.
const HeroName = "hero"

// Category is the rarity tier a class belongs to. Every class belongs to
// exactly one tier, except the hero class which is reserved for the player
// and excluded from enemy pools.
type Category string

const (
	CategoryPlayer    Category = "player"
	CategoryCommon    Category = "common"
	CategoryRare      Category = "rare"
	CategoryLegendary Category = "legendary"
)

// Class is an immutable archetype: a stat configuration such that all
// instances of the class show similar combat behavior.
type Class struct {
	Name     string   `yaml:"name"`
	Category Category `yaml:"category"`

	HP       Stat `yaml:"hp"`
	Strength Stat `yaml:"strength"`
	Speed    Stat `yaml:"speed"`

	// Inflicts is the status effect this class's attacks can apply; nil for
	// classes without a special ability.
	Inflicts *Affliction `yaml:"inflicts,omitempty"`
}

// Validate checks the class invariants.
//
// Postcondition: Returns nil iff the name is non-empty, the category is one of
// the known tiers, hp/strength/speed bases are >= 1, and any affliction has a
// positive magnitude.
func (c *Class) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("class: name must not be empty")
	}
	switch c.Category {
	case CategoryPlayer, CategoryCommon, CategoryRare, CategoryLegendary:
	default:
		return fmt.Errorf("class %q: unknown category %q", c.Name, c.Category)
	}
	if c.HP.Base < 1 {
		return fmt.Errorf("class %q: hp base must be >= 1", c.Name)
	}
	if c.Strength.Base < 1 {
		return fmt.Errorf("class %q: strength base must be >= 1", c.Name)
	}
	if c.Speed.Base < 1 {
		return fmt.Errorf("class %q: speed base must be >= 1", c.Name)
	}
	if c.Inflicts != nil && c.Inflicts.Magnitude < 1 {
		return fmt.Errorf("class %q: affliction magnitude must be >= 1", c.Name)
	}
	return nil
}

// classesYAML is the static class table compiled into the binary.
//
//go:embed classes.yaml
var classesYAML []byte

// Catalog is the immutable set of all classes, loaded once at startup and
// never mutated. Enemy classes are grouped by rarity tier.
type Catalog struct {
	hero  *Class
	tiers map[Category][]*Class
	byNam map[string]*Class
}

// catalogFile is the YAML schema of the embedded class table.
type catalogFile struct {
	Classes []*Class `yaml:"classes"`
}

// LoadCatalog parses raw YAML class records into a Catalog.
//
// Postcondition: Returns a Catalog with exactly one hero class, unique class
// names, and at least one class in every enemy tier, or a non-nil error.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing class catalog: %w", err)
	}

	cat := &Catalog{
		tiers: make(map[Category][]*Class),
		byNam: make(map[string]*Class),
	}
	for _, c := range file.Classes {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := cat.byNam[c.Name]; dup {
			return nil, fmt.Errorf("class %q: duplicate name", c.Name)
		}
		cat.byNam[c.Name] = c

		if c.Category == CategoryPlayer {
			if cat.hero != nil {
				return nil, fmt.Errorf("class %q: second player class (already have %q)", c.Name, cat.hero.Name)
			}
			cat.hero = c
			continue
		}
		cat.tiers[c.Category] = append(cat.tiers[c.Category], c)
	}

	if cat.hero == nil {
		return nil, fmt.Errorf("class catalog: missing player class")
	}
	for _, tier := range []Category{CategoryCommon, CategoryRare, CategoryLegendary} {
		if len(cat.tiers[tier]) == 0 {
			return nil, fmt.Errorf("class catalog: tier %q is empty", tier)
		}
	}
	return cat, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the catalog built from the embedded class table.
// The embedded table is validated by tests; a parse failure here is a build
// defect, not a runtime condition.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		cat, err := LoadCatalog(classesYAML)
		if err != nil {
			panic("character: embedded class catalog is invalid: " + err.Error())
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}

// Hero returns the reserved player class.
func (c *Catalog) Hero() *Class { return c.hero }

// ByName returns the class with the given name, or (nil, false).
func (c *Catalog) ByName(name string) (*Class, bool) {
	cl, ok := c.byNam[name]
	return cl, ok
}

// Tier returns the classes in the given enemy tier, in catalog order.
// The returned slice must not be modified.
func (c *Catalog) Tier(tier Category) []*Class { return c.tiers[tier] }

// tierWeights returns the draw weight for each enemy tier at the given
// distance tag. The further from home, the higher the chance of finding
// difficult enemies; a zero weight makes the tier unreachable.
func tierWeights(d location.Distance) (wCommon, wRare, wLegendary int) {
	switch d.Tier {
	case location.Near:
		return 9, 2, 0
	case location.Mid:
		return 7, 10, 1
	default:
		return 1, 6, 3
	}
}

// RandomEnemy draws one enemy class for the given distance from home.
// Every class in a tier receives that tier's weight; the draw is a single
// weighted choice over the flattened candidate list.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a non-hero class. An error means the candidate list
// was empty or all-zero-weight, which the catalog construction rules out; it
// is an invariant violation, not a condition to handle gracefully.
func (c *Catalog) RandomEnemy(d location.Distance, src dice.Source) (*Class, error) {
	wCommon, wRare, wLegendary := tierWeights(d)

	var candidates []*Class
	var weights []int
	for _, tw := range []struct {
		tier   Category
		weight int
	}{
		{CategoryCommon, wCommon},
		{CategoryRare, wRare},
		{CategoryLegendary, wLegendary},
	} {
		for _, class := range c.tiers[tw.tier] {
			candidates = append(candidates, class)
			weights = append(weights, tw.weight)
		}
	}

	idx, err := dice.WeightedIndex(weights, src)
	if err != nil {
		return nil, fmt.Errorf("selecting enemy class: %w", err)
	}
	return candidates[idx], nil
}
