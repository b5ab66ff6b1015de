package testutil

import (
	"fmt"
	"sync/atomic"
)

// SequentialIDGenerator returns build IDs "<prefix>-0001", "<prefix>-0002"...
//
// It satisfies store.IDGenerator and replaces the UUIDv7 generator where a
// test or golden file needs stable IDs.
type SequentialIDGenerator struct {
	prefix string
	n      atomic.Int64
}

// NewSequentialIDGenerator creates a generator. An empty prefix becomes
// "build".
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "build"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialIDGenerator) Generate() string {
	return fmt.Sprintf("%s-%04d", g.prefix, g.n.Add(1))
}
