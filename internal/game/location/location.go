// Package location maps filesystem directories to game locations. The home
// directory is the hero's safe zone; the further a directory is from home,
// the more dangerous the enemies found there.
package location

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a destination does not resolve to an
// existing directory.
var ErrNotFound = errors.New("no such file or directory")

// Tier classifies how far a location is from home. Only the tag drives
// enemy-tier weighting; the magnitude is carried for display and level scaling.
type Tier int

const (
	Near Tier = iota
	Mid
	Far
)

// String returns the lowercase tier name.
func (t Tier) String() string {
	switch t {
	case Near:
		return "near"
	case Mid:
		return "mid"
	case Far:
		return "far"
	default:
		return "unknown"
	}
}

// Distance is a tier tag plus the number of directory steps it was
// derived from.
type Distance struct {
	Tier      Tier
	Magnitude int
}

// DistanceFrom classifies a step count into a Distance.
//
// Postcondition: steps <= 4 maps to Near, steps <= 9 to Mid, else Far.
func DistanceFrom(steps int) Distance {
	switch {
	case steps <= 4:
		return Distance{Tier: Near, Magnitude: steps}
	case steps <= 9:
		return Distance{Tier: Mid, Magnitude: steps}
	default:
		return Distance{Tier: Far, Magnitude: steps}
	}
}

// Location is an absolute directory path anchored at a home directory.
// The zero value is not usable; construct with Home or From.
type Location struct {
	home string
	path string
}

// Home returns the location for the given home directory, which acts as
// both the anchor for distance computation and the hero's safe zone.
//
// Precondition: home must be an absolute path.
func Home(home string) Location {
	clean := filepath.Clean(home)
	return Location{home: clean, path: clean}
}

// From resolves raw into a Location. "~" and "~/x" expand to home; relative
// paths resolve against current; the result must be an existing directory.
//
// Precondition: current must have been built from Home or From.
// Postcondition: Returns a Location rooted at the same home, or ErrNotFound
// when the destination is not an existing directory.
func From(raw string, current Location) (Location, error) {
	var path string
	switch {
	case raw == "~" || raw == "":
		path = current.home
	case strings.HasPrefix(raw, "~/"):
		path = filepath.Join(current.home, raw[2:])
	case filepath.IsAbs(raw):
		path = filepath.Clean(raw)
	default:
		path = filepath.Join(current.path, raw)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return Location{}, fmt.Errorf("%q: %w", raw, ErrNotFound)
	}
	return Location{home: current.home, path: path}, nil
}

// Path returns the absolute directory path.
func (l Location) Path() string { return l.path }

// HomeLocation returns the home directory as a location, preserving the
// same anchor.
func (l Location) HomeLocation() Location {
	return Location{home: l.home, path: l.home}
}

// IsHome reports whether this location is the home directory.
func (l Location) IsHome() bool { return l.path == l.home }

// String renders the path with the home prefix abbreviated to "~".
func (l Location) String() string {
	if l.path == l.home {
		return "~"
	}
	if rel, err := filepath.Rel(l.home, l.path); err == nil && !strings.HasPrefix(rel, "..") {
		return "~/" + filepath.ToSlash(rel)
	}
	return l.path
}

// StepsFrom returns the number of single-directory moves between l and other:
// the walk up to their common ancestor plus the walk back down.
//
// Postcondition: Returns 0 iff the paths are equal.
func (l Location) StepsFrom(other Location) int {
	a := components(l.path)
	b := components(other.path)

	common := 0
	for common < len(a) && common < len(b) && a[common] == b[common] {
		common++
	}
	return (len(a) - common) + (len(b) - common)
}

// Distance classifies how far this location is from home.
func (l Location) Distance() Distance {
	return DistanceFrom(l.StepsFrom(Location{home: l.home, path: l.home}))
}

// WalkTowards returns the location one directory step closer to dest, and
// whether a step was taken. When l already equals dest it returns l, false.
func (l Location) WalkTowards(dest Location) (Location, bool) {
	if l.path == dest.path {
		return l, false
	}

	a := components(l.path)
	b := components(dest.path)
	common := 0
	for common < len(a) && common < len(b) && a[common] == b[common] {
		common++
	}

	var next string
	if len(a) > common {
		// Still above the common ancestor: step up.
		next = filepath.Dir(l.path)
	} else {
		// At the ancestor: step down towards dest.
		next = filepath.Join(l.path, b[common])
	}
	return Location{home: l.home, path: next}, true
}

// components splits an absolute path into its non-empty segments.
func components(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// snapshot is the serialized form of a Location.
type snapshot struct {
	Home string `yaml:"home"`
	Path string `yaml:"path"`
}

// MarshalYAML implements yaml.Marshaler.
func (l Location) MarshalYAML() (interface{}, error) {
	return snapshot{Home: l.home, Path: l.path}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The stored path is restored
// without re-checking the filesystem: a saved game must remain loadable even
// if the directory has since been removed.
func (l *Location) UnmarshalYAML(value *yaml.Node) error {
	var s snapshot
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s.Home == "" || s.Path == "" {
		return fmt.Errorf("location: incomplete snapshot")
	}
	l.home = filepath.Clean(s.Home)
	l.path = filepath.Clean(s.Path)
	return nil
}
