package game

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bonebound/internal/generate"
	"bonebound/internal/save"
)

// noiseScale is the noise frequency per tile for the noise terrain.
const noiseScale = 0.08

// Setup holds the command-line options shared by the local binary and the
// SSH server.
type Setup struct {
	Seed      int64
	Terrain   string // "rand" or "noise"
	Store     string // "file" or "sqlite"
	LocalSize int
	DataDir   string
}

// RegisterFlags binds the options to fs with their defaults.
func (c *Setup) RegisterFlags(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", 0, "World seed (0 picks one from the clock)")
	fs.StringVar(&c.Terrain, "terrain", "rand", "Terrain source: rand or noise")
	fs.StringVar(&c.Store, "store", "file", "Save store: file or sqlite")
	fs.IntVar(&c.LocalSize, "local-size", generate.DefaultConfig().LocalWidth, "Width and height of local maps")
	fs.StringVar(&c.DataDir, "data", "", "Directory for saves and logs (default: XDG data dir)")
}

// Validate rejects unknown option values.
func (c Setup) Validate() error {
	switch c.Terrain {
	case "rand", "noise":
	default:
		return fmt.Errorf("unknown terrain %q", c.Terrain)
	}
	switch c.Store {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.LocalSize < 3 {
		return fmt.Errorf("local size %d is too small", c.LocalSize)
	}
	return nil
}

// ResolveDataDir returns DataDir or the XDG default when it is unset.
func (c Setup) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return DataDir()
}

// Streams returns the random streams for a new session. A zero seed is
// replaced by the current time.
func (c Setup) Streams() generate.Streams {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if c.Terrain == "noise" {
		return generate.NewNoiseStreams(seed, noiseScale)
	}
	return generate.NewRandStreams(seed)
}

// OpenSaves opens the configured store under dir.
func (c Setup) OpenSaves(dir string, log *slog.Logger) (*save.Engine, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var store save.Store = save.NewFileStore(dir)
	if c.Store == "sqlite" {
		db, err := save.OpenSQLite(filepath.Join(dir, "saves.db"))
		if err != nil {
			return nil, err
		}
		store = db
	}
	return save.NewEngine(store, log), nil
}

// Options builds session options from the setup.
func (c Setup) Options(saves *save.Engine, log *slog.Logger) Options {
	return Options{
		Generate: generate.Config{LocalWidth: c.LocalSize, LocalHeight: c.LocalSize},
		Streams:  c.Streams(),
		Saves:    saves,
		Logger:   log,
	}
}
