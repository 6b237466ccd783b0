package game

import (
	"errors"
	"fmt"
	"log/slog"

	"bonebound/internal/gamemap"
	"bonebound/internal/generate"
	"bonebound/internal/render"
	"bonebound/internal/save"
)

// State tracks the session's state machine.
type State uint8

const (
	StateTitle State = iota
	StateSizeSelect
	StateSaveMenu
	StateLoadMenu
	StatePlayingWorld
	StatePlayingLocal
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateSizeSelect:
		return "size-select"
	case StateSaveMenu:
		return "save-menu"
	case StateLoadMenu:
		return "load-menu"
	case StatePlayingWorld:
		return "world"
	case StatePlayingLocal:
		return "local"
	}
	return "unknown"
}

// Playing reports whether s is one of the in-map states.
func (s State) Playing() bool {
	return s == StatePlayingWorld || s == StatePlayingLocal
}

// SpawnPoint is where the player starts on a new world.
var SpawnPoint = gamemap.Point{X: 2, Y: 2}

var (
	// ErrNoWorld is returned when saving before any world exists.
	ErrNoWorld = errors.New("no world to save")
	// ErrSavesDisabled is returned when the session has no save engine.
	ErrSavesDisabled = errors.New("saving is disabled")
)

// Options configures a Session.
type Options struct {
	Generate generate.Config
	Streams  generate.Streams
	Saves    *save.Engine // nil disables save and load
	Logger   *slog.Logger
	TileSize float64 // world units per tile for the camera
}

// Session owns one player's world, position and camera.
// It is not safe for concurrent use; drive it from a single loop.
type Session struct {
	opts Options
	log  *slog.Logger

	state    State
	world    *gamemap.World
	preset   gamemap.Preset
	worldPos gamemap.Point
	localPos gamemap.Point
	inLocal  bool

	camera           *render.Camera
	screenW, screenH float64
	intents          []Intent
}

// NewSession creates a session at the title screen.
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Streams == nil {
		opts.Streams = generate.NewRandStreams(1)
	}
	if opts.Generate.LocalWidth <= 0 || opts.Generate.LocalHeight <= 0 {
		opts.Generate = generate.DefaultConfig()
	}
	if opts.TileSize <= 0 {
		opts.TileSize = 1
	}
	return &Session{
		opts:   opts,
		log:    opts.Logger,
		state:  StateTitle,
		camera: render.NewCamera(opts.TileSize),
	}
}

func (s *Session) State() State               { return s.state }
func (s *Session) World() *gamemap.World      { return s.world }
func (s *Session) Preset() gamemap.Preset     { return s.preset }
func (s *Session) WorldPos() gamemap.Point    { return s.worldPos }
func (s *Session) LocalPos() gamemap.Point    { return s.localPos }
func (s *Session) InLocal() bool              { return s.inLocal }
func (s *Session) Camera() *render.Camera     { return s.camera }
func (s *Session) ScreenSize() (w, h float64) { return s.screenW, s.screenH }
func (s *Session) HasWorld() bool             { return s.world != nil }

// ActiveGrid returns the grid the player is walking on, or nil before a
// world exists.
func (s *Session) ActiveGrid() gamemap.Grid {
	if s.world == nil {
		return nil
	}
	if s.inLocal {
		if lm := s.world.Local(s.worldPos.X, s.worldPos.Y); lm != nil {
			return lm
		}
	}
	return s.world
}

// Player returns the player's coordinate on the active grid.
func (s *Session) Player() gamemap.Point {
	if s.inLocal {
		return s.localPos
	}
	return s.worldPos
}

// OpenTitle, OpenSizeSelect, OpenSaveMenu and OpenLoadMenu switch to the
// menu states drawn by the front end.
func (s *Session) OpenTitle()      { s.state = StateTitle }
func (s *Session) OpenSizeSelect() { s.state = StateSizeSelect }

// OpenSaveMenu is refused until a world exists.
func (s *Session) OpenSaveMenu() bool {
	if s.world == nil {
		return false
	}
	s.state = StateSaveMenu
	return true
}

func (s *Session) OpenLoadMenu() { s.state = StateLoadMenu }

// Resume returns to the map the player was on. It fails before any world
// exists.
func (s *Session) Resume() bool {
	if s.world == nil {
		return false
	}
	if s.inLocal {
		s.state = StatePlayingLocal
	} else {
		s.state = StatePlayingWorld
	}
	return true
}

// SelectWorldSize discards the current world and starts a new one.
func (s *Session) SelectWorldSize(p gamemap.Preset) {
	s.world = generate.World(p.Width, p.Height, s.opts.Streams.World())
	s.preset = p
	s.worldPos = SpawnPoint
	s.localPos = SpawnPoint
	s.inLocal = false
	s.state = StatePlayingWorld
	s.resetCamera()
	s.log.Info("world created", "preset", p.Name, "width", p.Width, "height", p.Height)
}

// TryMove steps the player one cell on the active grid. It returns false,
// changing nothing, when not playing or when the target is a wall or off
// the grid.
func (s *Session) TryMove(d Direction) bool {
	if !s.state.Playing() {
		return false
	}
	dx, dy := d.Delta()
	if dx == 0 && dy == 0 {
		return false
	}
	grid := s.ActiveGrid()
	next := s.Player().Add(dx, dy)
	if !gamemap.IsWalkable(grid, next.X, next.Y) {
		return false
	}
	if s.inLocal {
		s.localPos = next
	} else {
		s.worldPos = next
	}
	return true
}

// TryEnterLocal descends into the local map of the player's world cell,
// generating it on first entry. The player starts at its center.
func (s *Session) TryEnterLocal() bool {
	if s.state != StatePlayingWorld {
		return false
	}
	x, y := s.worldPos.X, s.worldPos.Y
	before := s.world.LocalCount()
	lm, ok := s.world.Materialize(x, y, s.opts.Generate.LocalBuilder(s.opts.Streams, x, y))
	if !ok {
		return false
	}
	if s.world.LocalCount() != before {
		s.log.Debug("local map generated", "x", x, "y", y, "biome", generate.BiomeFor(s.world.At(x, y)),
			"width", lm.Width(), "height", lm.Height())
	}
	s.inLocal = true
	s.localPos = lm.Center()
	s.state = StatePlayingLocal
	s.resetCamera()
	return true
}

// ExitLocal returns to the world map. The local map is kept.
func (s *Session) ExitLocal() bool {
	if s.state != StatePlayingLocal {
		return false
	}
	s.inLocal = false
	s.state = StatePlayingWorld
	s.resetCamera()
	return true
}

// SlotExists reports whether slot holds a save.
func (s *Session) SlotExists(slot int) bool {
	return s.opts.Saves != nil && s.opts.Saves.Exists(slot)
}

// SaveToSlot writes the world and player state to slot.
func (s *Session) SaveToSlot(slot int) error {
	if s.opts.Saves == nil {
		return ErrSavesDisabled
	}
	if s.world == nil {
		return ErrNoWorld
	}
	return s.opts.Saves.Save(slot, &save.Snapshot{
		World:    s.world,
		WorldPos: s.worldPos,
		LocalPos: s.localPos,
		InLocal:  s.inLocal,
	})
}

// LoadFromSlot replaces the world and player state with slot's contents
// and returns to the world map. On error nothing changes.
func (s *Session) LoadFromSlot(slot int) error {
	if s.opts.Saves == nil {
		return ErrSavesDisabled
	}
	snap, err := s.opts.Saves.Load(slot)
	if err != nil {
		return err
	}
	s.world = snap.World
	s.worldPos = snap.WorldPos
	s.localPos = snap.LocalPos
	s.inLocal = false
	s.preset = presetFor(s.world)
	s.state = StatePlayingWorld
	s.resetCamera()
	return nil
}

// Resize records the drawable screen size in camera screen units.
func (s *Session) Resize(w, h float64) {
	s.screenW, s.screenH = w, h
	s.camera.Offset = render.Vec2{X: w / 2, Y: h / 2}
}

// Zoom applies a scroll delta to the camera within the active map's range.
func (s *Session) Zoom(delta float64) {
	grid := s.ActiveGrid()
	if grid == nil || !s.state.Playing() {
		return
	}
	s.camera.Scroll(delta, grid.Width(), grid.Height(), s.inLocal)
}

// ResetCamera restores default zoom and placement for the active map.
func (s *Session) ResetCamera() {
	if s.state.Playing() {
		s.resetCamera()
	}
}

func (s *Session) resetCamera() {
	grid := s.ActiveGrid()
	p := s.Player()
	s.camera.Reset(grid.Width(), grid.Height(), p.X, p.Y, s.screenW, s.screenH, s.inLocal)
}

// Enqueue queues an intent for the next Tick.
func (s *Session) Enqueue(in Intent) {
	s.intents = append(s.intents, in)
}

// Tick applies every queued intent in order, then advances the camera one
// frame. Call it once per frame even when nothing was queued.
func (s *Session) Tick() {
	for _, in := range s.intents {
		s.apply(in)
	}
	s.intents = s.intents[:0]

	if !s.state.Playing() {
		return
	}
	grid := s.ActiveGrid()
	p := s.Player()
	s.camera.Update(grid.Width(), grid.Height(), p.X, p.Y, s.screenW, s.screenH)
}

func (s *Session) apply(in Intent) {
	switch in.Kind {
	case IntentMove:
		s.TryMove(in.Dir)
	case IntentEnter:
		s.TryEnterLocal()
	case IntentExit:
		s.ExitLocal()
	case IntentZoom:
		s.Zoom(in.Delta)
	case IntentResetCamera:
		s.ResetCamera()
	case IntentResize:
		s.Resize(in.W, in.H)
	}
}

// presetFor names a loaded world by its matching preset.
func presetFor(w *gamemap.World) gamemap.Preset {
	if p, ok := gamemap.PresetFor(w.Width(), w.Height()); ok {
		return p
	}
	return gamemap.Preset{
		Name:   fmt.Sprintf("CUSTOM %dx%d", w.Width(), w.Height()),
		Width:  w.Width(),
		Height: w.Height(),
		Zoom:   render.DefaultZoom(w.Width(), w.Height(), false),
	}
}
