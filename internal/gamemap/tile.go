package gamemap

// Tile is a single terrain classification. Its value is the character the
// presentation layer draws and the code written to save files.
type Tile byte

const (
	Wall     Tile = '#'
	Ground   Tile = '.'
	Water    Tile = '~'
	Mountain Tile = '^'
	Tree     Tile = 'T'
)

// Tiles lists the full alphabet in a stable order.
var Tiles = [...]Tile{Wall, Ground, Water, Mountain, Tree}

// Valid reports whether t belongs to the tile alphabet.
func (t Tile) Valid() bool {
	switch t {
	case Wall, Ground, Water, Mountain, Tree:
		return true
	}
	return false
}

// Walkable reports whether a player may stand on t.
func (t Tile) Walkable() bool { return t != Wall }

// Name returns a human-readable name for HUD text.
func (t Tile) Name() string {
	switch t {
	case Wall:
		return "wall"
	case Ground:
		return "ground"
	case Water:
		return "water"
	case Mountain:
		return "mountain"
	case Tree:
		return "forest"
	}
	return "unknown"
}

func (t Tile) String() string { return string(rune(t)) }
