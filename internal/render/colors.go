package render

import (
	"bonebound/internal/gamemap"

	"github.com/gdamore/tcell/v2"
)

// TileStyle holds how one tile kind is drawn. Emoji carry their own
// colors; the ASCII fallback uses the foreground color instead.
type TileStyle struct {
	Emoji string
	Color tcell.Color
}

// TileStyles maps each tile to its glyphs.
var TileStyles = map[gamemap.Tile]TileStyle{
	gamemap.Wall:     {Emoji: "🧱", Color: tcell.ColorGray},
	gamemap.Ground:   {Emoji: "🟩", Color: tcell.ColorDarkGreen},
	gamemap.Water:    {Emoji: "🌊", Color: tcell.ColorBlue},
	gamemap.Mountain: {Emoji: "⛰️", Color: tcell.ColorBrown},
	gamemap.Tree:     {Emoji: "🌲", Color: tcell.ColorGreen},
}

const (
	playerEmoji = "🧙"
	playerASCII = "@"
)
