package generate

import "bonebound/internal/gamemap"

// Biome selects the terrain distribution used for a grid.
type Biome uint8

const (
	BiomeOpen     Biome = iota // world level, no parent cell
	BiomeGround
	BiomeTree
	BiomeWater
	BiomeMountain
)

// band maps every draw below limit to tile. Bands are checked in order.
type band struct {
	limit float64
	tile  gamemap.Tile
}

var (
	openBands = []band{
		{0.05, gamemap.Water},
		{0.15, gamemap.Mountain},
		{0.20, gamemap.Tree},
	}
	groundBands = []band{
		{0.02, gamemap.Water},
		{0.06, gamemap.Mountain},
		{0.14, gamemap.Tree},
	}
	treeBands = []band{
		{0.02, gamemap.Water},
		{0.05, gamemap.Mountain},
		{0.25, gamemap.Ground},
	}
	waterBands = []band{
		{0.03, gamemap.Mountain},
		{0.12, gamemap.Ground},
	}
	mountainBands = []band{
		{0.03, gamemap.Water},
		{0.12, gamemap.Ground},
	}
)

// BiomeFor returns the local-map biome for a parent world tile.
// Unrecognized tiles fall back to BiomeGround.
func BiomeFor(parent gamemap.Tile) Biome {
	switch parent {
	case gamemap.Tree:
		return BiomeTree
	case gamemap.Water:
		return BiomeWater
	case gamemap.Mountain:
		return BiomeMountain
	}
	return BiomeGround
}

// Classify turns a uniform draw in [0,1) into a tile.
func (b Biome) Classify(p float64) gamemap.Tile {
	bands, fallback := b.policy()
	for _, bd := range bands {
		if p < bd.limit {
			return bd.tile
		}
	}
	return fallback
}

// policy returns the ordered bands and the tile used above the last band.
func (b Biome) policy() ([]band, gamemap.Tile) {
	switch b {
	case BiomeOpen:
		return openBands, gamemap.Ground
	case BiomeTree:
		return treeBands, gamemap.Tree
	case BiomeWater:
		return waterBands, gamemap.Water
	case BiomeMountain:
		return mountainBands, gamemap.Mountain
	}
	return groundBands, gamemap.Ground
}

func (b Biome) String() string {
	switch b {
	case BiomeOpen:
		return "open"
	case BiomeGround:
		return "ground"
	case BiomeTree:
		return "forest"
	case BiomeWater:
		return "water"
	case BiomeMountain:
		return "mountain"
	}
	return "unknown"
}
