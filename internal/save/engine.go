// Package save persists worlds to numbered save slots.
package save

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// NumSlots is the number of independent save slots.
const NumSlots = 3

var (
	// ErrNotFound means the slot holds no save.
	ErrNotFound = errors.New("save slot is empty")
	// ErrCorrupt means the slot's data could not be decoded.
	ErrCorrupt = errors.New("save data is corrupt")
	// ErrInvalidSlot means the slot number is outside 0..NumSlots-1.
	ErrInvalidSlot = errors.New("invalid save slot")
)

// Store holds the raw bytes of each slot.
type Store interface {
	// Read returns the slot's bytes, or an error wrapping ErrNotFound.
	Read(slot int) ([]byte, error)
	// Write replaces the slot's bytes.
	Write(slot int, data []byte) error
	Exists(slot int) (bool, error)
	Close() error
}

// Engine encodes snapshots into a Store.
type Engine struct {
	store Store
	log   *slog.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(store Store, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{store: store, log: log}
}

// Save encodes snap into slot, replacing whatever was there.
func (e *Engine) Save(slot int, snap *Snapshot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return err
	}
	if err := e.store.Write(slot, buf.Bytes()); err != nil {
		return fmt.Errorf("write slot %d: %w", slot, err)
	}
	e.log.Info("world saved",
		"slot", slot,
		"size", humanize.Bytes(uint64(buf.Len())),
		"world", fmt.Sprintf("%dx%d", snap.World.Width(), snap.World.Height()),
		"local_maps", snap.World.LocalCount())
	return nil
}

// Load decodes slot. It returns an error wrapping ErrNotFound for an
// empty slot and ErrCorrupt for unreadable data.
func (e *Engine) Load(slot int) (*Snapshot, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	data, err := e.store.Read(slot)
	if err != nil {
		return nil, fmt.Errorf("read slot %d: %w", slot, err)
	}
	snap, err := Decode(bytes.NewReader(data))
	if err != nil {
		e.log.Warn("save slot unreadable", "slot", slot, "error", err)
		return nil, fmt.Errorf("slot %d: %w", slot, err)
	}
	e.log.Info("world loaded",
		"slot", slot,
		"size", humanize.Bytes(uint64(len(data))),
		"local_maps", snap.World.LocalCount())
	return snap, nil
}

// Exists reports whether slot holds a save. Store errors count as empty.
func (e *Engine) Exists(slot int) bool {
	if checkSlot(slot) != nil {
		return false
	}
	ok, err := e.store.Exists(slot)
	if err != nil {
		e.log.Warn("save slot check failed", "slot", slot, "error", err)
		return false
	}
	return ok
}

// Close releases the underlying store.
func (e *Engine) Close() error { return e.store.Close() }

func checkSlot(slot int) error {
	if slot < 0 || slot >= NumSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return nil
}
