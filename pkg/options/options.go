// Package options provides data structures and functions for configuring
// ignitedb. It defines the parameters that control storage behavior
// (segment size, compaction cadence), the server's network and worker-pool
// behavior, and which engine backs a store directory.
package options

import "strings"

// Options defines the full set of tunables for an ignitedb server or
// embedded engine instance.
type Options struct {
	// DataDir is the directory a store's segments and engine marker live in.
	//
	// Default: "."
	DataDir string `json:"dataDir"`

	// Addr is the TCP address the server listens on, or the client dials.
	//
	// Default: "127.0.0.1:4000"
	Addr string `json:"addr"`

	// EngineName selects which Engine implementation backs the store. Only
	// "kvs" (the native log-structured engine) is implemented here.
	//
	// Default: "kvs"
	EngineName string `json:"engine"`

	// PoolKind selects the worker pool variant: "shared", "work-stealing", or
	// "naive".
	//
	// Default: "shared"
	PoolKind string `json:"pool"`

	// Threads is the worker pool's parallelism. It defaults to zero, which
	// workerpool.New rejects, so callers set it; cmd/ignite-server fills it
	// from its --threads flag, which defaults to the host's logical CPU count.
	Threads int `json:"threads"`

	// FilesizeLimit is the byte threshold at which the active segment rolls
	// over to a new one.
	//
	// Default: 1024
	FilesizeLimit int64 `json:"filesizeLimit"`

	// CompactionThresh spaces compaction attempts by segment id: a compaction
	// may run at a rollover whose new active id is a positive multiple of this
	// value. Rollover advances the id by two, so a value of 4 means an attempt
	// every second rollover.
	//
	// Default: 4
	CompactionThresh uint64 `json:"compactionThresh"`
}

// OptionFunc is a function type that modifies an Options value in place.
type OptionFunc func(*Options)

// WithDefaultOptions resets every field to its default value.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir sets the store directory.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithAddr sets the listen/dial address.
func WithAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.Addr = addr
		}
	}
}

// WithEngineName selects the engine implementation.
func WithEngineName(name string) OptionFunc {
	return func(o *Options) {
		name = strings.TrimSpace(name)
		if name != "" {
			o.EngineName = name
		}
	}
}

// WithPoolKind selects the worker pool variant.
func WithPoolKind(kind string) OptionFunc {
	return func(o *Options) {
		kind = strings.TrimSpace(kind)
		if kind != "" {
			o.PoolKind = kind
		}
	}
}

// WithThreads sets the worker pool's parallelism.
func WithThreads(threads int) OptionFunc {
	return func(o *Options) {
		if threads > 0 {
			o.Threads = threads
		}
	}
}

// WithFilesizeLimit sets the active-segment rollover threshold.
func WithFilesizeLimit(limit int64) OptionFunc {
	return func(o *Options) {
		if limit >= MinFilesizeLimit {
			o.FilesizeLimit = limit
		}
	}
}

// WithCompactionThresh sets the segment-id multiple at which a rollover may
// start a compaction.
func WithCompactionThresh(thresh uint64) OptionFunc {
	return func(o *Options) {
		if thresh > 0 {
			o.CompactionThresh = thresh
		}
	}
}
