// Package ssh adapts an SSH session into a tcell terminal so a world can be
// explored remotely.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

var _ tcell.Tty = (*Tty)(nil)

// Tty is a tcell.Tty whose input and output are an SSH channel and whose
// size follows the client's window-change requests.
type Tty struct {
	session gossh.Session

	mu       sync.Mutex
	window   gossh.Window
	onResize func()

	windows <-chan gossh.Window
	watch   sync.Once
}

// NewTty wraps s. pty carries the size requested at session start and
// windows delivers later changes.
func NewTty(s gossh.Session, pty gossh.Pty, windows <-chan gossh.Window) *Tty {
	return &Tty{
		session: s,
		window:  pty.Window,
		windows: windows,
	}
}

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *Tty) Close() error                { return t.session.Close() }

// Start, Stop and Drain have nothing to do: the channel is opened and torn
// down by the server handler and writes are not buffered.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize reports the last size the client sent.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize sets the callback run after every window change. The
// window channel is consumed by a single goroutine no matter how often
// the callback is replaced.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	t.mu.Unlock()

	t.watch.Do(func() { go t.follow() })
}

func (t *Tty) follow() {
	for win := range t.windows {
		t.mu.Lock()
		t.window = win
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
