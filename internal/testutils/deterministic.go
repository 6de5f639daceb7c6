// Package testutils provides deterministic generators for console testing.
// These keep generated identifiers stable across test runs.
package testutils

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

var (
	// Thread-safe counter for deterministic ID generation
	idCounter uint64
	idMutex   sync.Mutex
)

// DeterministicUUID returns UUIDs in v4 layout that increase per call:
// 00000001-0000-4000-8000-000000000001, 00000002-0000-4000-8000-000000000002, etc.
func DeterministicUUID() uuid.UUID {
	idMutex.Lock()
	defer idMutex.Unlock()

	idCounter++
	return uuid.MustParse(fmt.Sprintf("%08x-0000-4000-8000-%012x", idCounter, idCounter))
}

// SeededRand returns a random source with a fixed seed so generated names repeat.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ResetTestCounters resets the deterministic counters.
func ResetTestCounters() {
	idMutex.Lock()
	defer idMutex.Unlock()
	idCounter = 0
}
