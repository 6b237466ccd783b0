package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bonebound/internal/gamemap"
	"bonebound/internal/generate"
	"bonebound/internal/render"
	"bonebound/internal/save"

	"github.com/gdamore/tcell/v2"
)

// FrameRate is how many times per second the session ticks.
const FrameRate = 30

const maxMessages = 50

// Game drives a Session from a tcell screen: it turns key and mouse
// events into intents, ticks the session every frame and draws it.
type Game struct {
	screen   tcell.Screen
	session  *Session
	renderer *render.Renderer
	log      *slog.Logger
	selected int
	messages []string
}

// New creates a Game on an initialized screen.
func New(screen tcell.Screen, session *Session, ascii bool, log *slog.Logger) *Game {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	screen.EnableMouse()
	return &Game{
		screen:   screen,
		session:  session,
		renderer: render.NewRenderer(screen, ascii),
		log:      log,
	}
}

// Run is the main loop. It returns when the player quits and finalizes
// the screen.
func (g *Game) Run() {
	defer g.screen.Fini()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	g.resize()
	g.session.Tick()
	for {
		g.draw()
		select {
		case ev := <-events:
			if !g.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			g.session.Tick()
		}
	}
}

func (g *Game) resize() {
	w, h := g.renderer.ViewSize()
	g.session.Enqueue(ResizeTo(w, h))
}

// handleEvent processes one event and returns false when the game should
// end.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.resize()
	case *tcell.EventMouse:
		if d := wheelDelta(ev); d != 0 && g.session.State().Playing() {
			g.session.Enqueue(ZoomBy(d))
		}
	case *tcell.EventKey:
		action := keyToAction(ev)
		if action == ActionQuit {
			return false
		}
		return g.handleAction(action)
	}
	return true
}

func (g *Game) handleAction(a Action) bool {
	switch g.session.State() {
	case StateTitle:
		return g.titleAction(a)
	case StateSizeSelect:
		g.sizeAction(a)
	case StateSaveMenu, StateLoadMenu:
		g.slotAction(a)
	default:
		g.playAction(a)
	}
	return true
}

func (g *Game) playAction(a Action) {
	switch a {
	case ActionBack:
		g.openMenu(g.session.OpenTitle)
		return
	case ActionExit:
		if !g.session.InLocal() {
			g.openMenu(g.session.OpenTitle)
			return
		}
	case ActionSave:
		g.openMenu(func() { g.session.OpenSaveMenu() })
		return
	case ActionLoad:
		g.openMenu(g.session.OpenLoadMenu)
		return
	}
	if in, ok := playIntent(a); ok {
		g.session.Enqueue(in)
	}
}

func (g *Game) openMenu(open func()) {
	g.selected = 0
	open()
}

func (g *Game) titleAction(a Action) bool {
	switch a {
	case ActionUp:
		g.selected = (g.selected - 1 + len(titleOptions)) % len(titleOptions)
	case ActionDown:
		g.selected = (g.selected + 1) % len(titleOptions)
	case ActionSelect, ActionEnter:
		switch titleOptions[g.selected] {
		case optNewGame:
			g.openMenu(g.session.OpenSizeSelect)
		case optResume:
			g.session.Resume()
		case optSave:
			if g.session.OpenSaveMenu() {
				g.selected = 0
			}
		case optLoad:
			g.openMenu(g.session.OpenLoadMenu)
		case optQuit:
			return false
		}
	}
	return true
}

func (g *Game) sizeAction(a Action) {
	n := len(gamemap.Presets)
	switch a {
	case ActionUp:
		g.selected = (g.selected - 1 + n) % n
	case ActionDown:
		g.selected = (g.selected + 1) % n
	case ActionSelect, ActionEnter:
		p := gamemap.Presets[g.selected]
		g.session.SelectWorldSize(p)
		g.addMessage(fmt.Sprintf("A new %s world (%dx%d) rises.", p.Name, p.Width, p.Height))
	case ActionBack, ActionExit:
		g.openMenu(g.session.OpenTitle)
	}
}

func (g *Game) slotAction(a Action) {
	switch a {
	case ActionUp:
		g.selected = (g.selected - 1 + save.NumSlots) % save.NumSlots
	case ActionDown:
		g.selected = (g.selected + 1) % save.NumSlots
	case ActionSelect, ActionEnter:
		if g.session.State() == StateSaveMenu {
			g.saveSlot(g.selected)
		} else {
			g.loadSlot(g.selected)
		}
	case ActionBack, ActionExit:
		if !g.session.Resume() {
			g.openMenu(g.session.OpenTitle)
		}
	}
}

func (g *Game) saveSlot(slot int) {
	if err := g.session.SaveToSlot(slot); err != nil {
		g.log.Error("save failed", "slot", slot, "error", err)
		g.addMessage(fmt.Sprintf("Could not save to slot %d.", slot+1))
		return
	}
	g.addMessage(fmt.Sprintf("Saved to slot %d.", slot+1))
	g.session.Resume()
}

func (g *Game) loadSlot(slot int) {
	err := g.session.LoadFromSlot(slot)
	switch {
	case err == nil:
		g.addMessage(fmt.Sprintf("Loaded slot %d.", slot+1))
	case errors.Is(err, save.ErrNotFound):
		g.addMessage(fmt.Sprintf("Slot %d is empty.", slot+1))
	case errors.Is(err, save.ErrCorrupt):
		g.addMessage(fmt.Sprintf("Slot %d is damaged and could not be loaded.", slot+1))
	default:
		g.log.Error("load failed", "slot", slot, "error", err)
		g.addMessage(fmt.Sprintf("Could not load slot %d.", slot+1))
	}
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

func (g *Game) draw() {
	switch g.session.State() {
	case StateTitle:
		g.drawTitle()
	case StateSizeSelect:
		g.drawSizeSelect()
	case StateSaveMenu, StateLoadMenu:
		g.drawSlots()
	default:
		g.drawPlay()
	}
}

func (g *Game) drawPlay() {
	s := g.session
	grid := s.ActiveGrid()
	g.renderer.DrawFrame(grid, s.Camera(), s.Player())
	hud := render.HUD{
		Preset:   s.Preset(),
		Grid:     grid,
		Player:   s.Player(),
		InLocal:  s.InLocal(),
		Camera:   s.Camera(),
		Messages: g.messages,
	}
	if s.InLocal() {
		wp := s.WorldPos()
		hud.Biome = generate.BiomeFor(s.World().At(wp.X, wp.Y)).String()
	}
	g.renderer.DrawHUD(hud)
}
