package game

import "github.com/gdamore/tcell/v2"

// Action is a front-end command decoded from a key press.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionSelect
	ActionBack
	ActionEnter
	ActionExit
	ActionZoomIn
	ActionZoomOut
	ActionResetCamera
	ActionSave
	ActionLoad
	ActionQuit
)

// keyToAction maps a tcell key event to an action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyEnter:
		return ActionSelect
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionBack
	case tcell.KeyEscape:
		return ActionExit
	case tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'w', 'W', 'k':
		return ActionUp
	case 's', 'S', 'j':
		return ActionDown
	case 'd', 'D', 'l':
		return ActionRight
	case 'a', 'A', 'h':
		return ActionLeft
	case ' ':
		return ActionSelect
	case 'e', 'E', '>':
		return ActionEnter
	case 'x', 'X', '<':
		return ActionExit
	case '+', '=':
		return ActionZoomIn
	case '-', '_':
		return ActionZoomOut
	case 'r', 'R':
		return ActionResetCamera
	case 'p', 'P':
		return ActionSave
	case 'o', 'O':
		return ActionLoad
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDirection converts a movement action to a direction.
func actionToDirection(a Action) Direction {
	switch a {
	case ActionUp:
		return DirNorth
	case ActionDown:
		return DirSouth
	case ActionRight:
		return DirEast
	case ActionLeft:
		return DirWest
	}
	return DirNone
}

// wheelDelta returns +1 for wheel-up, -1 for wheel-down, 0 otherwise.
func wheelDelta(ev *tcell.EventMouse) float64 {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return 1
	case ev.Buttons()&tcell.WheelDown != 0:
		return -1
	}
	return 0
}

// playIntent translates an action during play into a session intent.
func playIntent(a Action) (Intent, bool) {
	if d := actionToDirection(a); d != DirNone {
		return Move(d), true
	}
	switch a {
	case ActionEnter, ActionSelect:
		return Enter(), true
	case ActionExit:
		return Exit(), true
	case ActionZoomIn:
		return ZoomBy(1), true
	case ActionZoomOut:
		return ZoomBy(-1), true
	case ActionResetCamera:
		return ResetView(), true
	}
	return Intent{}, false
}
