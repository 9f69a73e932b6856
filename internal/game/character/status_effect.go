package character

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StatusEffect is a damage-over-time condition kind. The kind itself carries
// no state; the damage per tick is fixed at infliction time by the
// inflicting class's Affliction.
type StatusEffect int

const (
	Burning StatusEffect = iota
	Poisoned
)

// String returns the lowercase effect name.
func (e StatusEffect) String() string {
	switch e {
	case Burning:
		return "burning"
	case Poisoned:
		return "poisoned"
	default:
		return "unknown"
	}
}

// statusEffectFromName parses a lowercase effect name.
func statusEffectFromName(name string) (StatusEffect, error) {
	switch name {
	case "burning":
		return Burning, nil
	case "poisoned":
		return Poisoned, nil
	default:
		return 0, fmt.Errorf("character: unknown status effect %q", name)
	}
}

// MarshalYAML implements yaml.Marshaler, encoding the effect as its name.
func (e StatusEffect) MarshalYAML() (interface{}, error) {
	return e.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *StatusEffect) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := statusEffectFromName(name)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Affliction pairs a status effect kind with its damage-per-tick magnitude.
// It appears both as a class's special ability (Class.Inflicts) and as the
// condition recorded on an afflicted Character.
type Affliction struct {
	Effect    StatusEffect `yaml:"effect"`
	Magnitude int          `yaml:"magnitude"`
}
