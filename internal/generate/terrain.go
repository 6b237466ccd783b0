package generate

import "bonebound/internal/gamemap"

// Config holds the generation policy that is not fixed by a size preset.
type Config struct {
	LocalWidth, LocalHeight int
}

// DefaultConfig returns the reference policy: 256×256 local maps.
func DefaultConfig() Config {
	return Config{LocalWidth: 256, LocalHeight: 256}
}

// spawnMin and spawnMax bound the block that is always cleared to ground.
const (
	spawnMin = 1
	spawnMax = 3
)

// Terrain classifies one cell of a width×height grid. Border cells are
// walls and never sample src.
func Terrain(x, y, width, height int, b Biome, src Source) gamemap.Tile {
	if x == 0 || y == 0 || x == width-1 || y == height-1 {
		return gamemap.Wall
	}
	return b.Classify(src.Sample(x, y))
}

// World generates a width×height world. Every non-wall cell is eligible
// for a local map; none is materialized yet.
func World(width, height int, src Source) *gamemap.World {
	w := gamemap.NewWorld(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := Terrain(x, y, width, height, BiomeOpen, src)
			w.SetCell(x, y, t, t != gamemap.Wall)
		}
	}
	clearSpawn(width, height, func(x, y int) { w.SetCell(x, y, gamemap.Ground, true) })
	return w
}

// Local generates a width×height local map biased by its parent tile.
func Local(width, height int, parent gamemap.Tile, src Source) *gamemap.LocalMap {
	b := BiomeFor(parent)
	m := gamemap.NewLocalMap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Set(x, y, Terrain(x, y, width, height, b, src))
		}
	}
	clearSpawn(width, height, func(x, y int) { m.Set(x, y, gamemap.Ground) })
	return m
}

// LocalBuilder returns the build function World.Materialize expects for
// the cell at (cx, cy).
func (c Config) LocalBuilder(streams Streams, cx, cy int) func(parent gamemap.Tile) *gamemap.LocalMap {
	return func(parent gamemap.Tile) *gamemap.LocalMap {
		return Local(c.LocalWidth, c.LocalHeight, parent, streams.Local(cx, cy))
	}
}

// clearSpawn applies set to the spawn block clipped to the grid interior,
// so grids narrower than five cells keep their wall border.
func clearSpawn(width, height int, set func(x, y int)) {
	for y := spawnMin; y <= spawnMax && y < height-1; y++ {
		for x := spawnMin; x <= spawnMax && x < width-1; x++ {
			set(x, y)
		}
	}
}
