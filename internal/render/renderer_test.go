package render

import (
	"testing"

	"bonebound/internal/gamemap"

	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestViewSize(t *testing.T) {
	s := newTestScreen(t, 41, 14)
	r := NewRenderer(s, true)
	w, h := r.ViewSize()
	if w != 20 || h != 10 {
		t.Errorf("ViewSize = (%v,%v); want (20,10)", w, h)
	}
}

func TestDrawFrameASCII(t *testing.T) {
	s := newTestScreen(t, 40, 14)
	r := NewRenderer(s, true)

	grid := gamemap.NewLocalMap(8, 8)
	for y := 1; y < 7; y++ {
		for x := 1; x < 7; x++ {
			grid.Set(x, y, gamemap.Ground)
		}
	}
	grid.Set(4, 1, gamemap.Water)

	cam := NewCamera(1)
	cam.Zoom = 1
	cam.Target = Vec2{4, 4}
	cam.Offset = Vec2{10, 5}

	r.DrawFrame(grid, cam, gamemap.Point{X: 2, Y: 2})
	s.Show()

	// Tile (0,0) lands on screen cell (6,1), i.e. column 12.
	if got := runeAt(s, 12, 1); got != '#' {
		t.Errorf("corner wall = %q; want '#'", got)
	}
	if got := runeAt(s, 14, 2); got != '.' {
		t.Errorf("ground at tile (1,1) = %q; want '.'", got)
	}
	if got := runeAt(s, 20, 2); got != '~' {
		t.Errorf("water at tile (4,1) = %q; want '~'", got)
	}
	if got := runeAt(s, 16, 3); got != '@' {
		t.Errorf("player marker = %q; want '@'", got)
	}
	if got := runeAt(s, 0, 0); got != ' ' {
		t.Errorf("off-map cell = %q; want blank", got)
	}
}

// countingGrid records how often the renderer probes a grid.
type countingGrid struct {
	gamemap.Grid
	inBounds, at int
}

func (g *countingGrid) InBounds(x, y int) bool {
	g.inBounds++
	return g.Grid.InBounds(x, y)
}

func (g *countingGrid) At(x, y int) gamemap.Tile {
	g.at++
	return g.Grid.At(x, y)
}

func TestDrawFrameSkipsCellsOffTheMap(t *testing.T) {
	s := newTestScreen(t, 40, 20)
	r := NewRenderer(s, true)
	grid := &countingGrid{Grid: gamemap.NewLocalMap(4, 4)}

	// A 20x16 view centered on a 4x4 map: the map covers screen cells
	// (8..11, 6..9).
	cam := NewCamera(1)
	cam.Zoom = 1
	cam.Target = Vec2{2, 2}
	cam.Offset = Vec2{10, 8}

	r.DrawFrame(grid, cam, gamemap.Point{X: 1, Y: 1})
	s.Show()

	if grid.inBounds != 16 || grid.at != 16 {
		t.Errorf("probed InBounds %d and At %d times; want 16 each", grid.inBounds, grid.at)
	}
	if got := runeAt(s, 16, 6); got != '#' {
		t.Errorf("tile (0,0) = %q; want '#'", got)
	}
	if got := runeAt(s, 22, 9); got != '#' {
		t.Errorf("tile (3,3) = %q; want '#'", got)
	}
	if got := runeAt(s, 14, 6); got != ' ' {
		t.Errorf("cell left of the map = %q; want blank", got)
	}
}

func TestDrawHUD(t *testing.T) {
	s := newTestScreen(t, 200, 14)
	r := NewRenderer(s, true)
	cam := NewCamera(1)
	r.DrawHUD(HUD{
		Preset:   gamemap.Presets[0],
		Grid:     gamemap.NewWorld(8, 8),
		Player:   gamemap.Point{X: 2, Y: 2},
		Camera:   cam,
		Messages: []string{"hello"},
	})
	hudY := 14 - HUDRows
	if got := runeAt(s, 0, hudY); got != '─' {
		t.Errorf("separator = %q", got)
	}
	if got := runeAt(s, 0, hudY+1); got != 'W' {
		t.Errorf("status line starts with %q; want 'W'", got)
	}
	if got := runeAt(s, 0, hudY+3); got != 'h' {
		t.Errorf("message line starts with %q; want 'h'", got)
	}
}
