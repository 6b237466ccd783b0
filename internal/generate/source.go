package generate

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Source yields draws in [0,1) for grid positions.
type Source interface {
	Sample(x, y int) float64
}

// Streams hands out the source for the world grid and one for each world
// cell's local grid.
type Streams interface {
	World() Source
	Local(cx, cy int) Source
}

// RandSource draws from a shared math/rand stream and ignores the position.
// Output depends on the order cells are sampled in.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource wraps rng.
func NewRandSource(rng *rand.Rand) RandSource { return RandSource{rng: rng} }

func (s RandSource) Sample(_, _ int) float64 { return s.rng.Float64() }

type randStreams struct {
	src RandSource
}

// NewRandStreams returns streams that all share one seeded generator, so
// the world and every local map consume the same sequence in the order
// they are generated.
func NewRandStreams(seed int64) Streams {
	return randStreams{src: NewRandSource(rand.New(rand.NewSource(seed)))}
}

func (s randStreams) World() Source         { return s.src }
func (s randStreams) Local(_, _ int) Source { return s.src }

// NoiseSource samples normalized simplex noise at the cell coordinate.
// The same seed and position always give the same value.
type NoiseSource struct {
	noise opensimplex.Noise
	scale float64
}

// NewNoiseSource creates a noise source. scale is the noise frequency per
// tile; values around 0.1 give features a few tiles wide.
func NewNoiseSource(seed int64, scale float64) NoiseSource {
	return NoiseSource{noise: opensimplex.NewNormalized(seed), scale: scale}
}

func (s NoiseSource) Sample(x, y int) float64 {
	v := s.noise.Eval2(float64(x)*s.scale, float64(y)*s.scale)
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return 0.999999
	}
	return v
}

type noiseStreams struct {
	seed  int64
	scale float64
}

// NewNoiseStreams returns position-keyed streams. Each world cell's local
// map gets its own noise field derived from the seed and the cell.
func NewNoiseStreams(seed int64, scale float64) Streams {
	return noiseStreams{seed: seed, scale: scale}
}

func (s noiseStreams) World() Source {
	return NewNoiseSource(s.seed, s.scale)
}

func (s noiseStreams) Local(cx, cy int) Source {
	return NewNoiseSource(int64(hash2(uint32(s.seed), int32(cx), int32(cy))), s.scale)
}

// hash2 mixes a seed and a 2D coordinate into a well-distributed value.
func hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return h
}
