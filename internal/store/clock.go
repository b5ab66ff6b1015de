package store

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock numbers builds. Values must strictly increase.
type Clock interface {
	Next() int64
}

// IDGenerator produces build IDs.
type IDGenerator interface {
	Generate() string
}

// LogicalClock is a monotonic counter safe for concurrent use.
type LogicalClock struct {
	seq atomic.Int64
}

// NewClockAt creates a clock whose next value is start+1.
func NewClockAt(start int64) *LogicalClock {
	c := &LogicalClock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *LogicalClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last number handed out.
func (c *LogicalClock) Current() int64 {
	return c.seq.Load()
}

// UUIDv7Generator generates time-sortable UUIDv7 build IDs.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
// Panics if UUID generation fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
