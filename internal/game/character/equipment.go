package character

import "fmt"

// equipmentStrength is the growth curve shared by all equipment: the
// contribution of a piece is its value at the piece's level.
var equipmentStrength = Stat{Base: 10, Increase: 5}

// EquipmentKind distinguishes the two equipment slots.
type EquipmentKind string

const (
	KindSword  EquipmentKind = "sword"
	KindShield EquipmentKind = "shield"
)

// Equipment is a sword or shield at a fixed level. Swords add to attack,
// shields add to defense.
type Equipment struct {
	Kind  EquipmentKind `yaml:"kind"`
	Level int           `yaml:"level"`
}

// NewEquipment creates a piece of the given kind at the given level.
//
// Precondition: level >= 1.
func NewEquipment(kind EquipmentKind, level int) *Equipment {
	return &Equipment{Kind: kind, Level: level}
}

// Strength returns the stat contribution of this piece.
//
// Postcondition: Strictly increasing in Level.
func (e *Equipment) Strength() int {
	return equipmentStrength.At(e.Level)
}

// IsUpgradeFrom reports whether this piece is strictly stronger than other.
// A nil other is always upgraded.
func (e *Equipment) IsUpgradeFrom(other *Equipment) bool {
	return other == nil || e.Strength() > other.Strength()
}

// String renders the piece for display, e.g. "sword[3]".
func (e *Equipment) String() string {
	return fmt.Sprintf("%s[%d]", e.Kind, e.Level)
}
