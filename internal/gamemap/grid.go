package gamemap

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point { return Point{p.X + dx, p.Y + dy} }

// Grid is the read-only view shared by world and local maps.
type Grid interface {
	Width() int
	Height() int
	InBounds(x, y int) bool
	At(x, y int) Tile
}

// IsWalkable returns true when (x, y) is inside g and not a wall.
func IsWalkable(g Grid, x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.At(x, y).Walkable()
}

// LocalMap is the detailed grid nested inside one world cell.
// Tiles are stored row-major in a single buffer.
type LocalMap struct {
	width, height int
	tiles         []Tile
}

// NewLocalMap creates a LocalMap filled with walls.
// Panics if either dimension is not positive.
func NewLocalMap(width, height int) *LocalMap {
	if width <= 0 || height <= 0 {
		panic("gamemap: local map dimensions must be positive")
	}
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = Wall
	}
	return &LocalMap{width: width, height: height, tiles: tiles}
}

func (m *LocalMap) Width() int  { return m.width }
func (m *LocalMap) Height() int { return m.height }

// InBounds reports whether (x, y) is within the map boundaries.
func (m *LocalMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the tile at (x, y). Panics if out of bounds.
func (m *LocalMap) At(x, y int) Tile {
	return m.tiles[y*m.width+x]
}

// Set replaces the tile at (x, y).
func (m *LocalMap) Set(x, y int, t Tile) {
	m.tiles[y*m.width+x] = t
}

// Center returns the middle cell, used as the entry point.
func (m *LocalMap) Center() Point {
	return Point{m.width / 2, m.height / 2}
}

// Row returns row y as a slice into the backing buffer.
func (m *LocalMap) Row(y int) []Tile {
	return m.tiles[y*m.width : (y+1)*m.width]
}
