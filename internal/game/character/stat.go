// Package character defines combat archetypes (classes), the mutable
// characters instantiated from them, and status effects.
package character

// Stat is an attribute growth curve: a starting value plus a fixed amount
// gained per level.
//
// Invariant: Stat values are immutable once defined on a Class.
type Stat struct {
	Base     int `yaml:"base"`
	Increase int `yaml:"increase"`
}

// At returns the stat value at the given level: Base + level*Increase.
//
// Precondition: level >= 0.
// Postcondition: Monotonically non-decreasing in level when Increase >= 0.
func (s Stat) At(level int) int {
	return s.Base + level*s.Increase
}
