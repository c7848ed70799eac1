// Package index provides the in-memory hash table mapping live keys to
// their (segment id, offset) location on disk. It embodies the system's
// core Bitcask-style tradeoff: every key lives in RAM, every value lives on
// disk, and the engine's writer/compactor lock ordering is built around the
// read-write lock this package exposes.
package index

import (
	stdErrors "errors"

	"github.com/ignitedb/ignite/pkg/errors"
)

var ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")

// New creates an empty Index ready for concurrent use.
func New(config *Config) (*Index, error) {
	if config == nil || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "index configuration is required",
		).WithField("config").WithRule("required").WithProvided(config)
	}

	return &Index{log: config.Logger, entries: make(map[string]Location, 2048)}, nil
}

// Get returns the Location for key and whether it is present.
func (idx *Index) Get(key string) (Location, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	loc, ok := idx.entries[key]
	return loc, ok
}

// Set records key's new Location, overwriting any previous one.
func (idx *Index) Set(key string, loc Location) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[key] = loc
}

// Delete removes key from the index. It reports whether key was present.
func (idx *Index) Delete(key string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	_, ok := idx.entries[key]
	delete(idx.entries, key)
	return ok
}

// Has reports whether key is present without allocating a Location copy for
// the caller — used by Remove, which only needs presence before appending
// the Rm record.
func (idx *Index) Has(key string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.entries[key]
	return ok
}

// Snapshot returns a shallow copy of every key/Location pair currently in
// the index, taken under a single read lock. The compactor uses this to
// decide, for each sealed-segment record it scans, whether that record is
// still the authoritative one for its key.
func (idx *Index) Snapshot() map[string]Location {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	snap := make(map[string]Location, len(idx.entries))
	for k, v := range idx.entries {
		snap[k] = v
	}
	return snap
}

// CompareAndSwap replaces key's Location with next only if its current
// Location equals expected. This is exactly the "only if location still
// points at a segment id from the compaction input" guard compaction
// publication needs: a concurrent write that has since moved the key past
// the compacted generation must win.
func (idx *Index) CompareAndSwap(key string, expected, next Location) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	cur, ok := idx.entries[key]
	if !ok || cur != expected {
		return false
	}
	idx.entries[key] = next
	return true
}

// Len returns the number of live keys in the index.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Close releases the index's backing map. The index must not be used after
// Close returns.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	clear(idx.entries)
	idx.entries = nil

	idx.log.Infow("index closed")
	return nil
}
