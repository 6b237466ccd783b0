// bonebound-server serves BoneBound over SSH. Every connection gets its
// own world and session; saves are kept per SSH user. Build:
//
//	go build -o bonebound-server ./cmd/server
//
// Usage:
//
//	./bonebound-server [-port 2222] [-key server_host_key] [-terrain noise] [-store sqlite]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"bonebound/internal/game"
	internalssh "bonebound/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	xssh "golang.org/x/crypto/ssh"
)

// allowedTerms is the set of TERM values a client may request. Anything
// else is replaced by xterm-256color before terminfo lookup.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

// maxNameBytes bounds a sanitized user name.
const maxNameBytes = 16

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	var setup game.Setup
	setup.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := setup.Validate(); err != nil {
		logger.Error("invalid options", "error", err)
		os.Exit(2)
	}
	dataDir, err := setup.ResolveDataDir()
	if err != nil {
		logger.Error("no data directory", "error", err)
		os.Exit(1)
	}

	srv := &server{setup: setup, dataDir: dataDir, log: logger}
	ssrv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		Handler:     srv.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{loadOrCreateHostKey(*keyFile, logger)},
	}

	logger.Info("listening", "addr", ssrv.Addr, "terrain", setup.Terrain, "store", setup.Store, "data", dataDir)
	if err := ssrv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type server struct {
	setup   game.Setup
	dataDir string
	log     *slog.Logger
}

// handleSession runs one game for the lifetime of the connection.
func (srv *server) handleSession(s gossh.Session) {
	pty, windows, ok := s.Pty()
	if !ok {
		fmt.Fprintln(s, "BoneBound needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}

	name := sanitizeName(s.User())
	if name == "" {
		name = "guest"
	}
	log := srv.log.With("conn", uuid.NewString(), "user", name, "remote", s.RemoteAddr().String())
	log.Info("session started")
	defer log.Info("session ended")

	screen, err := newScreen(s, pty, windows)
	if err != nil {
		log.Warn("terminal setup failed", "term", pty.Term, "error", err)
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	saves, err := srv.setup.OpenSaves(filepath.Join(srv.dataDir, "users", name), log)
	if err != nil {
		screen.Fini()
		log.Error("cannot open saves", "error", err)
		fmt.Fprintln(s, "Saves are unavailable right now.")
		return
	}
	defer saves.Close()

	session := game.NewSession(srv.setup.Options(saves, log))
	game.New(screen, session, false, log).Run()
}

// termMu serializes the TERM environment swap around terminfo lookup,
// since tcell reads TERM from the process environment.
var termMu sync.Mutex

func newScreen(s gossh.Session, pty gossh.Pty, windows <-chan gossh.Window) (tcell.Screen, error) {
	term := pty.Term
	if !allowedTerms[term] {
		term = defaultTerm
	}

	tty := internalssh.NewTty(s, pty, windows)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// sanitizeName drops control characters from an SSH user name and cuts it
// to at most maxNameBytes without splitting a rune. The result is used as
// a directory name, so path separators and dots are dropped too.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || r == '/' || r == '\\' || r == '.' || r == unicode.ReplacementChar {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *slog.Logger) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", "path", path)
			return signer
		}
	}

	log.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Error("generate host key", "error", err)
		os.Exit(1)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Error("create signer", "error", err)
		os.Exit(1)
	}
	pemBlock, err := xssh.MarshalPrivateKey(key, "bonebound server")
	if err == nil {
		err = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	if err != nil {
		log.Warn("host key not persisted", "path", path, "error", err)
	}
	return signer
}
