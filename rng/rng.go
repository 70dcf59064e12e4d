// Package rng centralizes deterministic random-stream construction for
// lattice fills and Metropolis sweeps.
//
// Goals:
//   - Determinism: same seed ⇒ identical streams across runs and platforms.
//   - Isolation: every independent chain owns its own *rand.Rand; there is
//     no package-level or hidden time-based source anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across
//     goroutines; use Derive to create one stream per worker or chain.
package rng

import "math/rand"

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// New returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into the seed of
// one chain's substream.
//
// Notes:
//   - The golden-ratio increment 0x9e3779b97f4a7c15 and the multipliers
//     0xbf58476d1ce4e5b9 / 0x94d049bb133111eb are the standard SplitMix64
//     constants; adjacent stream ids map to well-separated seeds.
//   - A zero parent is replaced by DefaultSeed first, and a zero result is
//     remapped, so a derived seed never hits the seed==0 sentinel of New.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	if parent == 0 {
		parent = DefaultSeed
	}
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		x = uint64(DefaultSeed)
	}
	return int64(x)
}

// Derive returns an independent deterministic stream for (parent, stream).
// It does not consume anything from a shared source, so the result depends
// only on its arguments and not on call order.
//
// Complexity: O(1).
func Derive(parent int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}
