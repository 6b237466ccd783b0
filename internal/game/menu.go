package game

import (
	"fmt"

	"bonebound/internal/gamemap"
	"bonebound/internal/save"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	optNewGame = "NEW GAME"
	optResume  = "RESUME"
	optSave    = "SAVE"
	optLoad    = "LOAD"
	optQuit    = "QUIT"
)

var titleOptions = []string{optNewGame, optResume, optSave, optLoad, optQuit}

var (
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	normalStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	hintStyle   = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	pickStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// menuItem is one line of a vertical menu.
type menuItem struct {
	text     string
	disabled bool
}

// drawMenu renders a centered title, its items with selection arrows, and
// hint lines at the bottom of the screen.
func (g *Game) drawMenu(title, info string, items []menuItem, hints ...string) {
	g.screen.Clear()
	_, h := g.screen.Size()

	g.centerText(h/5, title, titleStyle)
	if info != "" {
		g.centerText(h/5+2, info, hintStyle)
	}

	startY := h / 2
	if startY+len(items) >= h-len(hints)-1 {
		startY = h/5 + 4
	}
	for i, item := range items {
		style := normalStyle
		if item.disabled {
			style = dimStyle
		}
		text := item.text
		if i == g.selected {
			if !item.disabled {
				style = pickStyle
			}
			text = "> " + text + " <"
		}
		g.centerText(startY+i*2, text, style)
	}

	if n := len(g.messages); n > 0 {
		g.centerText(h-len(hints)-2, g.messages[n-1], tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	for i, hint := range hints {
		g.centerText(h-len(hints)+i, hint, hintStyle)
	}
	g.screen.Show()
}

func (g *Game) drawTitle() {
	items := make([]menuItem, len(titleOptions))
	for i, opt := range titleOptions {
		item := menuItem{text: opt}
		switch opt {
		case optResume, optSave:
			item.disabled = !g.session.HasWorld()
		}
		items[i] = item
	}
	g.drawMenu("BoneBound", "", items, "Use UP/DOWN to navigate, ENTER to select")
}

func (g *Game) drawSizeSelect() {
	items := make([]menuItem, len(gamemap.Presets))
	for i, p := range gamemap.Presets {
		items[i] = menuItem{text: fmt.Sprintf("%s (%dx%d)", p.Name, p.Width, p.Height)}
	}
	sel := gamemap.Presets[g.selected%len(gamemap.Presets)]
	info := fmt.Sprintf("Selected: %s (%dx%d)", sel.Name, sel.Width, sel.Height)
	g.drawMenu("Map Size", info, items,
		"Use UP/DOWN to navigate",
		"ENTER to select map size",
		"BACKSPACE to return to menu")
}

func (g *Game) drawSlots() {
	title := "Save Game"
	if g.session.State() == StateLoadMenu {
		title = "Load Game"
	}
	items := make([]menuItem, save.NumSlots)
	for i := range items {
		status := "empty"
		if g.session.SlotExists(i) {
			status = "saved"
		}
		items[i] = menuItem{
			text:     fmt.Sprintf("SLOT %d  [%s]", i+1, status),
			disabled: g.session.State() == StateLoadMenu && status == "empty",
		}
	}
	g.drawMenu(title, "", items, "ENTER to choose a slot, BACKSPACE to go back")
}

func (g *Game) centerText(y int, text string, style tcell.Style) {
	w, _ := g.screen.Size()
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	drawScreenText(g.screen, x, y, text, style)
}

// drawScreenText writes a string to the screen at (x, y) with the given style.
func drawScreenText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}
