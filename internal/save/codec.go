package save

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"bonebound/internal/gamemap"
)

// Limits applied while decoding so a damaged header cannot request an
// absurd allocation.
const (
	maxDimension = 1 << 15
	maxCells     = 1 << 26
)

var byteOrder = binary.LittleEndian

// Snapshot is everything a save slot records.
type Snapshot struct {
	World    *gamemap.World
	WorldPos gamemap.Point
	LocalPos gamemap.Point
	InLocal  bool
}

// Encode writes snap in the slot format: a header of int32 world width,
// height, world x, y, local x, y and a mode byte, then for every world
// cell in row-major order its tile byte, eligibility byte and presence
// byte, followed by the local map's int32 width, height and row-major tile
// bytes when present.
func Encode(w io.Writer, snap *Snapshot) error {
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	world := snap.World
	ew.int32(world.Width())
	ew.int32(world.Height())
	ew.int32(snap.WorldPos.X)
	ew.int32(snap.WorldPos.Y)
	ew.int32(snap.LocalPos.X)
	ew.int32(snap.LocalPos.Y)
	ew.bool(snap.InLocal)

	for y := 0; y < world.Height(); y++ {
		for x := 0; x < world.Width(); x++ {
			c := world.Cell(x, y)
			ew.byte(byte(c.Tile))
			ew.bool(c.HasLocal)
			lm := world.Local(x, y)
			ew.bool(lm != nil)
			if lm == nil {
				continue
			}
			ew.int32(lm.Width())
			ew.int32(lm.Height())
			for ly := 0; ly < lm.Height(); ly++ {
				for _, t := range lm.Row(ly) {
					ew.byte(byte(t))
				}
			}
		}
	}
	if ew.err != nil {
		return fmt.Errorf("encode: %w", ew.err)
	}
	return bw.Flush()
}

// Decode reads a snapshot written by Encode. The result shares nothing
// with any existing world. Malformed input yields an error wrapping
// ErrCorrupt, and no grid is allocated before the input is known to be
// long enough to fill it.
func Decode(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	er := &errReader{r: bytes.NewReader(data)}

	width, height := er.int32(), er.int32()
	snap := &Snapshot{
		WorldPos: gamemap.Point{X: er.int32(), Y: er.int32()},
		LocalPos: gamemap.Point{X: er.int32(), Y: er.int32()},
		InLocal:  er.bool(),
	}
	if er.err != nil {
		return nil, corrupt("header", er.err)
	}
	if err := checkDims(width, height); err != nil {
		return nil, corrupt("world size", err)
	}
	if er.remaining() < 3*width*height {
		return nil, corrupt("world", fmt.Errorf("%dx%d cells need %d bytes, %d left", width, height, 3*width*height, er.remaining()))
	}

	world := gamemap.NewWorld(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tile := gamemap.Tile(er.byte())
			hasLocal := er.bool()
			present := er.bool()
			if er.err != nil {
				return nil, corrupt(fmt.Sprintf("cell (%d,%d)", x, y), er.err)
			}
			if !tile.Valid() {
				return nil, corrupt(fmt.Sprintf("cell (%d,%d)", x, y), fmt.Errorf("unknown tile code %#x", byte(tile)))
			}
			world.SetCell(x, y, tile, hasLocal)
			if !present {
				continue
			}
			lm, err := decodeLocal(er)
			if err != nil {
				return nil, corrupt(fmt.Sprintf("local map at (%d,%d)", x, y), err)
			}
			if err := world.Attach(x, y, lm); err != nil {
				return nil, corrupt("local map", err)
			}
		}
	}

	if n := er.remaining(); n > 0 {
		return nil, corrupt("trailer", fmt.Errorf("%d unexpected bytes after the last cell", n))
	}
	if !world.InBounds(snap.WorldPos.X, snap.WorldPos.Y) {
		return nil, corrupt("player", fmt.Errorf("world position %v outside %dx%d", snap.WorldPos, width, height))
	}
	if snap.InLocal {
		lm := world.Local(snap.WorldPos.X, snap.WorldPos.Y)
		if lm == nil {
			return nil, corrupt("player", fmt.Errorf("in a local map at %v that was not saved", snap.WorldPos))
		}
		if !lm.InBounds(snap.LocalPos.X, snap.LocalPos.Y) {
			return nil, corrupt("player", fmt.Errorf("local position %v outside %dx%d", snap.LocalPos, lm.Width(), lm.Height()))
		}
	}
	snap.World = world
	return snap, nil
}

func decodeLocal(er *errReader) (*gamemap.LocalMap, error) {
	width, height := er.int32(), er.int32()
	if er.err != nil {
		return nil, er.err
	}
	if err := checkDims(width, height); err != nil {
		return nil, err
	}
	if er.remaining() < width*height {
		return nil, io.ErrUnexpectedEOF
	}
	lm := gamemap.NewLocalMap(width, height)
	row := make([]byte, width)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(er.r, row); err != nil {
			return nil, err
		}
		for x, b := range row {
			t := gamemap.Tile(b)
			if !t.Valid() {
				return nil, fmt.Errorf("unknown tile code %#x at (%d,%d)", b, x, y)
			}
			lm.Set(x, y, t)
		}
	}
	return lm, nil
}

func checkDims(width, height int) error {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension || width*height > maxCells {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	return nil
}

func corrupt(what string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %s: %w", ErrCorrupt, what, err)
}

// errWriter remembers the first write error so encoding code stays linear.
type errWriter struct {
	w   *bufio.Writer
	buf [4]byte
	err error
}

func (ew *errWriter) byte(b byte) {
	if ew.err != nil {
		return
	}
	ew.err = ew.w.WriteByte(b)
}

func (ew *errWriter) bool(v bool) {
	if v {
		ew.byte(1)
	} else {
		ew.byte(0)
	}
}

func (ew *errWriter) int32(v int) {
	if ew.err != nil {
		return
	}
	byteOrder.PutUint32(ew.buf[:], uint32(int32(v)))
	_, ew.err = ew.w.Write(ew.buf[:])
}

// errReader is the decoding counterpart of errWriter.
type errReader struct {
	r   *bytes.Reader
	buf [4]byte
	err error
}

func (er *errReader) byte() byte {
	if er.err != nil {
		return 0
	}
	b, err := er.r.ReadByte()
	er.err = err
	return b
}

func (er *errReader) remaining() int { return er.r.Len() }

func (er *errReader) bool() bool {
	b := er.byte()
	if er.err == nil && b > 1 {
		er.err = fmt.Errorf("invalid flag byte %#x", b)
	}
	return b == 1
}

func (er *errReader) int32() int {
	if er.err != nil {
		return 0
	}
	if _, err := io.ReadFull(er.r, er.buf[:]); err != nil {
		er.err = err
		return 0
	}
	return int(int32(byteOrder.Uint32(er.buf[:])))
}
