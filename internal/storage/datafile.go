// Package storage persists the game session as a YAML snapshot under the
// player's data directory.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Silcet/rpg-cli/internal/game"
)

const fileName = "data.yaml"

// ErrNotFound is returned by Load when no snapshot exists yet.
var ErrNotFound = errors.New("no saved game")

// Datafile reads and writes game snapshots in a fixed directory.
type Datafile struct {
	dir    string
	logger *zap.Logger
}

// NewDatafile creates a Datafile rooted at dir. The directory is created
// lazily on the first Save.
//
// Precondition: dir must be an absolute path. A nil logger is replaced
// with a no-op.
func NewDatafile(dir string, logger *zap.Logger) *Datafile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Datafile{dir: dir, logger: logger}
}

// Path returns the snapshot file path.
func (d *Datafile) Path() string {
	return filepath.Join(d.dir, fileName)
}

// Load reads the saved snapshot into a Game. The result is not yet
// playable: the caller must Hydrate it to rewire runtime dependencies.
//
// Postcondition: Returns ErrNotFound when no snapshot exists; any other
// error means the file exists but could not be read or parsed.
func (d *Datafile) Load() (*game.Game, error) {
	raw, err := os.ReadFile(d.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", d.Path(), err)
	}

	var g game.Game
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", d.Path(), err)
	}
	return &g, nil
}

// Save writes the snapshot. The write goes through a temporary file and a
// rename so a crash mid-write never corrupts the previous save.
func (d *Datafile) Save(g *game.Game) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", d.dir, err)
	}

	out, err := yaml.Marshal(g)
	if err != nil {
		return fmt.Errorf("serializing game: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), d.Path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", d.Path(), err)
	}

	d.logger.Debug("game saved", zap.String("path", d.Path()))
	return nil
}

// Remove deletes the snapshot. Removing a snapshot that does not exist is
// not an error.
func (d *Datafile) Remove() error {
	if err := os.Remove(d.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", d.Path(), err)
	}
	return nil
}
