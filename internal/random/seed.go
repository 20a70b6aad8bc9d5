// Package random provides seeded pseudo-random sources for board generation.
//
// Seeds come from crypto/rand so live games are unpredictable, while an
// explicit seed reproduces the same mine layout for replays and tests.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a generator for seed together with the seed it used. A nil
// seed draws a fresh one with NewSeed.
func NewRand(seed *int64) (*rand.Rand, int64, error) {
	if seed != nil {
		return rand.New(rand.NewSource(*seed)), *seed, nil
	}
	value, err := NewSeed()
	if err != nil {
		return nil, 0, err
	}
	return rand.New(rand.NewSource(value)), value, nil
}
