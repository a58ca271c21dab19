// Package random provides seed generation and seeded generators for rolls.
//
// Seeds come from crypto/rand so independent calls never share state; a
// seeded *rand.Rand is built per call so a roll can be replayed exactly.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a generator that is deterministic for the given seed.
// The generator is not safe for concurrent use and must stay call-scoped.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ParseSeed parses a decimal seed. An empty value reports ok=false.
func ParseSeed(value string) (seed int64, ok bool, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false, nil
	}
	seed, err = strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse seed %q: %w", value, err)
	}
	return seed, true, nil
}
