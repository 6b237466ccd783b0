package render

import (
	"fmt"

	"bonebound/internal/gamemap"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUD is the status shown under the map.
type HUD struct {
	Preset   gamemap.Preset
	Grid     gamemap.Grid
	Player   gamemap.Point
	InLocal  bool
	Biome    string // parent terrain while in a local map
	Camera   *Camera
	Messages []string
}

// DrawHUD renders the status lines at the bottom of the screen and shows
// the frame.
func (r *Renderer) DrawHUD(h HUD) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, tcell.ColorGray)

	mode := "World"
	if h.InLocal {
		mode = "Local (" + h.Biome + ")"
	}
	tiles := humanize.Comma(int64(h.Grid.Width() * h.Grid.Height()))
	status := fmt.Sprintf("%s  Position: (%d, %d)  Map: %s (%dx%d, %s tiles)  Zoom: %.1fx  Camera: (%.0f, %.0f)",
		mode, h.Player.X, h.Player.Y, h.Preset.Name, h.Grid.Width(), h.Grid.Height(), tiles,
		h.Camera.Zoom, h.Camera.Target.X, h.Camera.Target.Y)
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	help := "WASD/Arrows: Move | E: Enter | X: Exit | +/-/Wheel: Zoom | R: Reset Camera | P: Save | O: Load | Q: Quit"
	r.drawText(0, hudY+2, help, tcell.StyleDefault.Foreground(tcell.ColorLightGray))

	if n := len(h.Messages); n > 0 {
		r.drawText(0, hudY+3, h.Messages[n-1], tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}
