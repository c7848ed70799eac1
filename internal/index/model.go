package index

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Location pinpoints a live Set record: the segment that holds it and the
// byte offset, within that segment, where the record begins. It is the
// entire payload the index needs per key — the memory-efficiency goal is
// served by keeping this struct small enough that millions of entries stay
// cheap to hold in RAM.
type Location struct {
	SegmentID uint16
	Offset    int64
}

// Index is the in-memory hash table mapping live keys to their Location on
// disk. It embodies the system's core space/time tradeoff: every key lives
// in RAM, every value lives on disk, and a lookup costs one map access plus
// one seek.
type Index struct {
	log     *zap.SugaredLogger
	entries map[string]Location
	mu      sync.RWMutex
	closed  atomic.Bool
}

// Config encapsulates the configuration parameters required to initialize an Index.
type Config struct {
	Logger *zap.SugaredLogger
}
