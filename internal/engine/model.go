package engine

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ignitedb/ignite/internal/index"
	"github.com/ignitedb/ignite/pkg/options"
)

// Engine is the native log-structured store: an in-memory Index fronting a
// directory of append-only segment files, with a background compactor that
// reclaims space from overwritten and removed records. It is the sole
// implementation of enginekit.Engine shipped here; an alternate engine need
// only satisfy that interface.
//
// Engine values are cheap to share: every field that mutates after
// construction lives behind the writerMu mutex or the Index's own
// read-write lock, so handing the same *Engine to multiple goroutines (one
// per worker-pool job) requires no further synchronization.
type Engine struct {
	dir  string
	opts *options.Options
	log  *zap.SugaredLogger
	idx  *index.Index

	// writerMu serializes access to the active segment: its file handle, id,
	// and current size. It is always acquired before any index write lock a
	// call underneath it might take, per the engine's lock ordering.
	writerMu   sync.Mutex
	activeID   uint64
	activeFile *os.File
	size       int64

	compacting atomic.Bool
	compactWG  sync.WaitGroup

	closed atomic.Bool
}

// Config holds the parameters needed to open an Engine.
type Config struct {
	Dir     string
	Options *options.Options
	Logger  *zap.SugaredLogger
}
