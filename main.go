// bonebound is a terminal explorer for procedurally generated tile worlds.
// Every tile of the world map can be entered as its own local map.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bonebound/internal/game"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
)

func main() {
	ascii := flag.Bool("ascii", false, "Draw tiles as ASCII instead of emoji")
	var setup game.Setup
	setup.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := run(setup, *ascii); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(setup game.Setup, ascii bool) error {
	if err := setup.Validate(); err != nil {
		return err
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal")
	}

	dir, err := setup.ResolveDataDir()
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(dir, "bonebound.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))

	saves, err := setup.OpenSaves(dir, logger)
	if err != nil {
		return fmt.Errorf("open saves: %w", err)
	}
	defer saves.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	logger.Info("started", "terrain", setup.Terrain, "store", setup.Store, "local_size", setup.LocalSize)
	game.New(screen, game.NewSession(setup.Options(saves, logger)), ascii, logger).Run()
	return nil
}
