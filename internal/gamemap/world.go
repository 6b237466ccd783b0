package gamemap

import "fmt"

// WorldCell is one cell of the coarse map. A cell with HasLocal set may own
// exactly one LocalMap, created the first time the player enters it.
type WorldCell struct {
	Tile     Tile
	HasLocal bool
	local    int // 1-based index into World.locals; 0 = not materialized
}

// Materialized reports whether the cell's local map exists.
func (c WorldCell) Materialized() bool { return c.local != 0 }

// World is the coarse grid. It owns every LocalMap created from its cells;
// dropping the World drops all of them.
type World struct {
	width, height int
	cells         []WorldCell
	locals        []*LocalMap
}

// NewWorld creates a World of walls with no local maps.
// Panics if either dimension is not positive.
func NewWorld(width, height int) *World {
	if width <= 0 || height <= 0 {
		panic("gamemap: world dimensions must be positive")
	}
	cells := make([]WorldCell, width*height)
	for i := range cells {
		cells[i].Tile = Wall
	}
	return &World{width: width, height: height, cells: cells}
}

func (w *World) Width() int  { return w.width }
func (w *World) Height() int { return w.height }

// InBounds reports whether (x, y) is within the world.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// At returns the tile at (x, y). Panics if out of bounds.
func (w *World) At(x, y int) Tile {
	return w.cells[y*w.width+x].Tile
}

// Cell returns a copy of the cell at (x, y).
func (w *World) Cell(x, y int) WorldCell {
	return w.cells[y*w.width+x]
}

// SetCell overwrites the tile and eligibility of (x, y). Any local map the
// cell already owns is kept.
func (w *World) SetCell(x, y int, t Tile, hasLocal bool) {
	c := &w.cells[y*w.width+x]
	c.Tile = t
	c.HasLocal = hasLocal
}

// CanLocalize reports whether the cell at (x, y) may own a local map.
func (w *World) CanLocalize(x, y int) bool {
	return w.InBounds(x, y) && w.cells[y*w.width+x].HasLocal
}

// Local returns the materialized local map for (x, y), or nil.
func (w *World) Local(x, y int) *LocalMap {
	if !w.InBounds(x, y) {
		return nil
	}
	c := w.cells[y*w.width+x]
	if c.local == 0 {
		return nil
	}
	return w.locals[c.local-1]
}

// LocalCount returns how many local maps have been materialized.
func (w *World) LocalCount() int { return len(w.locals) }

// Materialize returns the local map for (x, y), calling build with the
// cell's tile the first time only. ok is false when the cell is out of
// bounds or not eligible; build is never called in that case.
func (w *World) Materialize(x, y int, build func(parent Tile) *LocalMap) (lm *LocalMap, ok bool) {
	if !w.CanLocalize(x, y) {
		return nil, false
	}
	if lm := w.Local(x, y); lm != nil {
		return lm, true
	}
	lm = build(w.At(x, y))
	w.store(x, y, lm)
	return lm, true
}

// Attach installs an already built local map on (x, y). It is used when
// reconstructing a world from a save and refuses to replace an existing map.
func (w *World) Attach(x, y int, lm *LocalMap) error {
	if !w.CanLocalize(x, y) {
		return fmt.Errorf("cell (%d,%d) cannot own a local map", x, y)
	}
	if w.Local(x, y) != nil {
		return fmt.Errorf("cell (%d,%d) already has a local map", x, y)
	}
	w.store(x, y, lm)
	return nil
}

func (w *World) store(x, y int, lm *LocalMap) {
	w.locals = append(w.locals, lm)
	w.cells[y*w.width+x].local = len(w.locals)
}
