package game

// Direction is one of the four cardinal moves.
type Direction uint8

const (
	DirNone Direction = iota
	DirNorth
	DirSouth
	DirEast
	DirWest
)

// Delta converts a direction to (dx, dy).
func (d Direction) Delta() (int, int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	case DirWest:
		return -1, 0
	}
	return 0, 0
}

// IntentKind identifies what an Intent asks the session to do.
type IntentKind uint8

const (
	IntentMove IntentKind = iota
	IntentEnter
	IntentExit
	IntentZoom
	IntentResetCamera
	IntentResize
)

// Intent is one discrete request from the input layer, applied on the
// next Tick.
type Intent struct {
	Kind  IntentKind
	Dir   Direction // IntentMove
	Delta float64   // IntentZoom
	W, H  float64   // IntentResize
}

func Move(d Direction) Intent      { return Intent{Kind: IntentMove, Dir: d} }
func Enter() Intent                { return Intent{Kind: IntentEnter} }
func Exit() Intent                 { return Intent{Kind: IntentExit} }
func ZoomBy(delta float64) Intent  { return Intent{Kind: IntentZoom, Delta: delta} }
func ResetView() Intent            { return Intent{Kind: IntentResetCamera} }
func ResizeTo(w, h float64) Intent { return Intent{Kind: IntentResize, W: w, H: h} }
