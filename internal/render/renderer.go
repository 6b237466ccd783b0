package render

import (
	"math"

	"bonebound/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows reserved below the map.
const HUDRows = 4

// Renderer draws a grid through a Camera onto a tcell screen. Each tile
// occupies two terminal columns so emoji and ASCII line up the same way;
// the camera's screen space is measured in those two-column cells.
type Renderer struct {
	screen tcell.Screen
	ascii  bool
}

// NewRenderer creates a Renderer. With ascii set, tiles are drawn as
// their alphabet characters instead of emoji.
func NewRenderer(screen tcell.Screen, ascii bool) *Renderer {
	return &Renderer{screen: screen, ascii: ascii}
}

// ViewSize returns the map area in camera screen units.
func (r *Renderer) ViewSize() (w, h float64) {
	cols, rows := r.screen.Size()
	rows -= HUDRows
	if rows < 0 {
		rows = 0
	}
	return float64(cols / 2), float64(rows)
}

// DrawFrame clears the screen and draws the grid and the player marker.
func (r *Renderer) DrawFrame(grid gamemap.Grid, cam *Camera, player gamemap.Point) {
	r.screen.Clear()
	vw, vh := r.ViewSize()
	cols, rows := int(vw), int(vh)
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)

	// Only screen cells covered by the visible tile range are sampled.
	x0, y0, x1, y1 := cam.VisibleTiles(grid.Width(), grid.Height())
	tl := cam.WorldToScreen(Vec2{float64(x0) * cam.TileSize, float64(y0) * cam.TileSize})
	br := cam.WorldToScreen(Vec2{float64(x1+1) * cam.TileSize, float64(y1+1) * cam.TileSize})
	sx0, sy0 := max(0, int(math.Floor(tl.X))), max(0, int(math.Floor(tl.Y)))
	sx1, sy1 := min(cols, int(math.Ceil(br.X))), min(rows, int(math.Ceil(br.Y)))

	for sy := sy0; sy < sy1; sy++ {
		for sx := sx0; sx < sx1; sx++ {
			p := cam.ScreenToWorld(Vec2{float64(sx) + 0.5, float64(sy) + 0.5})
			tx := int(math.Floor(p.X / cam.TileSize))
			ty := int(math.Floor(p.Y / cam.TileSize))
			if !grid.InBounds(tx, ty) {
				continue
			}
			r.putTile(sx*2, sy, grid.At(tx, ty), bg)
		}
	}

	ps := cam.WorldToScreen(Vec2{
		(float64(player.X) + 0.5) * cam.TileSize,
		(float64(player.Y) + 0.5) * cam.TileSize,
	})
	sx, sy := int(math.Floor(ps.X)), int(math.Floor(ps.Y))
	if sx >= 0 && sx < cols && sy >= 0 && sy < rows {
		glyph := playerEmoji
		if r.ascii {
			glyph = playerASCII
		}
		r.putGlyph(sx*2, sy, glyph, bg.Foreground(tcell.ColorYellow).Bold(true))
	}
}

func (r *Renderer) putTile(x, y int, t gamemap.Tile, style tcell.Style) {
	ts, ok := TileStyles[t]
	if !ok || r.ascii {
		color := tcell.ColorWhite
		if ok {
			color = ts.Color
		}
		r.putGlyph(x, y, t.String(), style.Foreground(color))
		return
	}
	r.putGlyph(x, y, ts.Emoji, style)
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) < 2 {
		// Pad narrow glyphs so every tile spans two columns.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
