// Package rng provides the deterministic pseudo-random source used to scatter
// balls at initialization. It is a two-variable add/rotate generator chosen
// for reproducibility across platforms, not statistical quality.
package rng

import "math/bits"

// Default seed constants.
const (
	DefaultLow  uint32 = 16180
	DefaultHigh uint32 = 31415
)

// GameRand is not safe for concurrent use; each world owns its own.
type GameRand struct {
	low, high uint32
}

func New(low, high uint32) *GameRand {
	return &GameRand{low: low, high: high}
}

func Default() *GameRand {
	return New(DefaultLow, DefaultHigh)
}

// FromSeed folds a 64-bit seed into the default constants. Seed 0 yields the
// default stream.
func FromSeed(seed int64) *GameRand {
	u := uint64(seed)
	return New(DefaultLow^uint32(u), DefaultHigh^uint32(u>>32))
}

// Uint32 advances the generator: high = rotl16(high) + low; low += high.
func (g *GameRand) Uint32() uint32 {
	g.high = bits.RotateLeft32(g.high, 16)
	g.high += g.low
	g.low += g.high
	return g.high
}

// Float maps the next value onto [0, max).
func (g *GameRand) Float(max float64) float64 {
	return float64(g.Uint32()) / (1 << 32) * max
}
