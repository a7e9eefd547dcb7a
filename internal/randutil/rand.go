// Package randutil builds the pseudo-random sources used for the predictor's
// random fallback and the simulated opponents.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. The same seed
// always yields the same sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewSeed reads a fresh seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Resolve returns seed unchanged when it is non-zero, otherwise a fresh
// seed. Zero means "unseeded" in configuration.
func Resolve(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}

// Derive produces an independent child seed, e.g. one per simulated opponent.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
