package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bonebound/internal/gamemap"
	"bonebound/internal/generate"
	"bonebound/internal/render"
	"bonebound/internal/save"
)

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	s := NewSession(Options{
		Generate: generate.DefaultConfig(),
		Streams:  generate.NewRandStreams(99),
		Saves:    save.NewEngine(save.NewFileStore(dir), nil),
		TileSize: 32,
	})
	s.Resize(800, 600)
	return s, dir
}

func tiny() gamemap.Preset   { return gamemap.Presets[0] }
func medium() gamemap.Preset { return gamemap.Presets[2] }

func TestSelectWorldSize(t *testing.T) {
	s, _ := newTestSession(t)
	if s.State() != StateTitle {
		t.Fatalf("new session state = %v; want title", s.State())
	}
	s.SelectWorldSize(medium())
	if s.State() != StatePlayingWorld {
		t.Errorf("state = %v; want world", s.State())
	}
	if s.WorldPos() != SpawnPoint || s.LocalPos() != SpawnPoint {
		t.Errorf("positions = %v %v; want spawn", s.WorldPos(), s.LocalPos())
	}
	if w := s.World(); w.Width() != 32 || w.Height() != 32 {
		t.Errorf("world %dx%d; want 32x32", w.Width(), w.Height())
	}
	if s.Camera().Zoom != 1.5 {
		t.Errorf("zoom = %v; want preset 1.5", s.Camera().Zoom)
	}

	old := s.World()
	s.SelectWorldSize(tiny())
	if s.World() == old {
		t.Error("selecting a size must replace the world")
	}
}

func TestMoveClampsAtEasternWall(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectWorldSize(tiny())
	for range 5 {
		s.TryMove(DirEast)
	}
	if got := s.WorldPos(); got != (gamemap.Point{X: 6, Y: 2}) {
		t.Errorf("position = %v; want (6,2)", got)
	}
}

func TestMoveBlockedByWallAllDirections(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectWorldSize(tiny())
	corners := []struct {
		pos gamemap.Point
		dir Direction
	}{
		{gamemap.Point{X: 1, Y: 3}, DirWest},
		{gamemap.Point{X: 6, Y: 3}, DirEast},
		{gamemap.Point{X: 3, Y: 1}, DirNorth},
		{gamemap.Point{X: 3, Y: 6}, DirSouth},
	}
	for _, c := range corners {
		s.worldPos = c.pos
		if s.TryMove(c.dir) {
			t.Errorf("move %v from %v into the border succeeded", c.dir, c.pos)
		}
		if s.WorldPos() != c.pos {
			t.Errorf("position changed to %v", s.WorldPos())
		}
	}

	// A position on the border itself must not step outside the grid.
	s.worldPos = gamemap.Point{X: 0, Y: 0}
	for _, d := range []Direction{DirNorth, DirWest} {
		if s.TryMove(d) {
			t.Errorf("move %v out of bounds succeeded", d)
		}
	}
	if s.TryMove(DirNone) {
		t.Error("DirNone should not move")
	}
}

func TestMoveIgnoredOutsidePlay(t *testing.T) {
	s, _ := newTestSession(t)
	if s.TryMove(DirEast) {
		t.Error("move on the title screen should be rejected")
	}
	if s.TryEnterLocal() || s.ExitLocal() {
		t.Error("enter/exit on the title screen should be rejected")
	}
}

func TestEnterExitReenterLocal(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectWorldSize(tiny())

	if !s.TryEnterLocal() {
		t.Fatal("spawn cell should be enterable")
	}
	if s.State() != StatePlayingLocal || !s.InLocal() {
		t.Fatalf("state = %v; want local", s.State())
	}
	if s.LocalPos() != (gamemap.Point{X: 128, Y: 128}) {
		t.Errorf("local position = %v; want (128,128)", s.LocalPos())
	}
	lm := s.World().Local(2, 2)
	if lm == nil || s.ActiveGrid() != gamemap.Grid(lm) {
		t.Fatal("active grid should be the cell's local map")
	}
	snapshot := make([]gamemap.Tile, 0, lm.Width()*lm.Height())
	for y := 0; y < lm.Height(); y++ {
		snapshot = append(snapshot, lm.Row(y)...)
	}

	// Wander so the reset on re-entry is observable.
	for range 3 {
		s.TryMove(DirSouth)
		s.TryMove(DirEast)
	}
	if s.TryEnterLocal() {
		t.Error("entering while already local should be rejected")
	}

	if !s.ExitLocal() {
		t.Fatal("exit should succeed")
	}
	if s.State() != StatePlayingWorld || s.InLocal() {
		t.Fatalf("state = %v after exit; want world", s.State())
	}
	if s.WorldPos() != SpawnPoint {
		t.Errorf("world position = %v; want unchanged spawn", s.WorldPos())
	}
	if s.ExitLocal() {
		t.Error("exit from the world map should be rejected")
	}

	if !s.TryEnterLocal() {
		t.Fatal("re-entry should succeed")
	}
	if s.LocalPos() != (gamemap.Point{X: 128, Y: 128}) {
		t.Errorf("local position after re-entry = %v; want (128,128)", s.LocalPos())
	}
	if s.World().Local(2, 2) != lm {
		t.Fatal("re-entry must reuse the same local map")
	}
	if s.World().LocalCount() != 1 {
		t.Errorf("LocalCount = %d; want 1", s.World().LocalCount())
	}
	i := 0
	for y := 0; y < lm.Height(); y++ {
		for _, tile := range lm.Row(y) {
			if tile != snapshot[i] {
				t.Fatalf("local tile %d changed between entries", i)
			}
			i++
		}
	}
}

func TestEnterLocalRejectedOnWall(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectWorldSize(tiny())
	s.worldPos = gamemap.Point{X: 0, Y: 0}
	if s.TryEnterLocal() {
		t.Error("wall cell should not be enterable")
	}
	if s.State() != StatePlayingWorld || s.World().LocalCount() != 0 {
		t.Error("rejected entry must not change state")
	}
}

func TestLocalMoveUsesLocalGrid(t *testing.T) {
	s := NewSession(Options{
		Generate: generate.Config{LocalWidth: 6, LocalHeight: 6},
		Streams:  generate.NewRandStreams(3),
	})
	s.SelectWorldSize(tiny())
	if !s.TryEnterLocal() {
		t.Fatal("enter")
	}
	if s.LocalPos() != (gamemap.Point{X: 3, Y: 3}) {
		t.Fatalf("center = %v; want (3,3)", s.LocalPos())
	}
	for range 5 {
		s.TryMove(DirEast)
	}
	if got := s.LocalPos(); got.X != 4 {
		t.Errorf("local x = %d; want 4 (5 is border)", got.X)
	}
	if s.WorldPos() != SpawnPoint {
		t.Error("local moves must not touch the world position")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, dir := newTestSession(t)
	s.SelectWorldSize(medium())
	s.TryMove(DirEast)
	s.TryEnterLocal()
	s.TryMove(DirNorth)
	world := s.World()
	wantWorld, wantLocal := s.WorldPos(), s.LocalPos()

	if err := s.SaveToSlot(0); err != nil {
		t.Fatalf("SaveToSlot: %v", err)
	}
	if !s.SlotExists(0) || s.SlotExists(1) {
		t.Fatal("slot existence wrong after save")
	}

	// A second session on the same directory sees the save.
	other := NewSession(Options{Saves: save.NewEngine(save.NewFileStore(dir), nil)})
	if err := other.LoadFromSlot(0); err != nil {
		t.Fatalf("LoadFromSlot: %v", err)
	}
	if other.State() != StatePlayingWorld || other.InLocal() {
		t.Errorf("state after load = %v; want world", other.State())
	}
	if other.WorldPos() != wantWorld || other.LocalPos() != wantLocal {
		t.Errorf("positions = %v %v; want %v %v", other.WorldPos(), other.LocalPos(), wantWorld, wantLocal)
	}
	if other.Preset().Name != "MEDIUM" {
		t.Errorf("preset = %q; want MEDIUM", other.Preset().Name)
	}
	got := other.World()
	for y := 0; y < world.Height(); y++ {
		for x := 0; x < world.Width(); x++ {
			if got.Cell(x, y) != world.Cell(x, y) {
				t.Fatalf("cell (%d,%d) differs", x, y)
			}
		}
	}
	a, b := world.Local(wantWorld.X, wantWorld.Y), got.Local(wantWorld.X, wantWorld.Y)
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("local tile (%d,%d) differs", x, y)
			}
		}
	}

	// Re-entering the loaded cell reuses the loaded local map.
	if !other.TryEnterLocal() || other.World().Local(wantWorld.X, wantWorld.Y) != b {
		t.Error("re-entry after load should reuse the restored local map")
	}
}

func TestLoadEmptySlotLeavesStateUntouched(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectWorldSize(tiny())
	s.TryMove(DirSouth)
	s.TryEnterLocal()
	world, wp, lp, state := s.World(), s.WorldPos(), s.LocalPos(), s.State()

	err := s.LoadFromSlot(1)
	if !errors.Is(err, save.ErrNotFound) {
		t.Fatalf("err = %v; want ErrNotFound", err)
	}
	if s.World() != world || s.WorldPos() != wp || s.LocalPos() != lp || s.State() != state {
		t.Error("failed load must not change the session")
	}
}

func TestLoadCorruptSlotLeavesStateUntouched(t *testing.T) {
	s, dir := newTestSession(t)
	s.SelectWorldSize(tiny())
	if err := os.WriteFile(filepath.Join(dir, "slot2.sav"), []byte{8, 0, 0, 0, 8}, 0o644); err != nil {
		t.Fatal(err)
	}
	world := s.World()
	if err := s.LoadFromSlot(2); !errors.Is(err, save.ErrCorrupt) {
		t.Fatalf("err = %v; want ErrCorrupt", err)
	}
	if s.World() != world || s.State() != StatePlayingWorld {
		t.Error("corrupt load must not change the session")
	}
}

func TestSaveErrors(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.SaveToSlot(0); !errors.Is(err, ErrNoWorld) {
		t.Errorf("save without world: err = %v; want ErrNoWorld", err)
	}
	noSaves := NewSession(Options{})
	noSaves.SelectWorldSize(tiny())
	if err := noSaves.SaveToSlot(0); !errors.Is(err, ErrSavesDisabled) {
		t.Errorf("err = %v; want ErrSavesDisabled", err)
	}
	if err := noSaves.LoadFromSlot(0); !errors.Is(err, ErrSavesDisabled) {
		t.Errorf("err = %v; want ErrSavesDisabled", err)
	}
	if noSaves.SlotExists(0) {
		t.Error("SlotExists without saves should be false")
	}
}

func TestMenuTransitions(t *testing.T) {
	s, _ := newTestSession(t)
	if s.Resume() {
		t.Error("resume without a world should fail")
	}
	if s.OpenSaveMenu() {
		t.Error("save menu without a world should be refused")
	}
	s.OpenLoadMenu()
	if s.State() != StateLoadMenu {
		t.Errorf("state = %v; want load menu", s.State())
	}
	s.OpenSizeSelect()
	s.SelectWorldSize(tiny())
	s.TryEnterLocal()
	s.OpenTitle()
	if s.State() != StateTitle {
		t.Fatalf("state = %v; want title", s.State())
	}
	if !s.Resume() || s.State() != StatePlayingLocal {
		t.Errorf("resume should return to the local map, got %v", s.State())
	}
	if !s.OpenSaveMenu() || s.State() != StateSaveMenu {
		t.Error("save menu should open with a world")
	}
}

func TestTickAppliesIntentsInOrder(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectWorldSize(medium())
	s.Enqueue(Move(DirEast))
	s.Enqueue(Move(DirEast))
	s.Enqueue(Move(DirSouth))
	if s.WorldPos() != SpawnPoint {
		t.Fatal("intents must wait for Tick")
	}
	s.Tick()
	if got := s.WorldPos(); got != (gamemap.Point{X: 4, Y: 3}) {
		t.Errorf("position = %v; want (4,3)", got)
	}

	s.Enqueue(Enter())
	s.Tick()
	if s.State() != StatePlayingLocal {
		t.Fatalf("state = %v; want local", s.State())
	}
	s.Enqueue(Exit())
	s.Enqueue(ResizeTo(400, 300))
	s.Tick()
	if s.State() != StatePlayingWorld {
		t.Errorf("state = %v; want world", s.State())
	}
	if w, h := s.ScreenSize(); w != 400 || h != 300 {
		t.Errorf("screen = %vx%v; want 400x300", w, h)
	}
	s.Tick()
	if len(s.intents) != 0 {
		t.Error("queue should be empty after Tick")
	}
}

func TestZoomClampedPerMode(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectWorldSize(tiny())
	for range 100 {
		s.Enqueue(ZoomBy(1))
	}
	s.Tick()
	if z := s.Camera().Zoom; z > 8.0 {
		t.Errorf("world zoom %v exceeds 8", z)
	}
	s.TryEnterLocal()
	for range 100 {
		s.Zoom(1)
	}
	_, hi := render.ZoomRange(256, 256, true)
	if z := s.Camera().Zoom; z > hi {
		t.Errorf("local zoom %v exceeds %v", z, hi)
	}
	s.Enqueue(ResetView())
	s.Tick()
	if z := s.Camera().Zoom; z != 1 {
		t.Errorf("zoom after reset = %v; want 1", z)
	}
}

func TestCameraFollowsAfterMove(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectWorldSize(gamemap.Presets[5])
	s.Resize(32, 32)
	s.ResetCamera()
	start := s.Camera().Target
	for range 10 {
		s.Enqueue(Move(DirEast))
	}
	for range 60 {
		s.Tick()
	}
	if s.Camera().Target.X <= start.X {
		t.Errorf("camera did not follow east: %v -> %v", start, s.Camera().Target)
	}
}
