// Package engine implements ignitedb's native log-structured storage
// engine. It coordinates three pieces: an internal/index in-memory map from
// key to (segment, offset), an append-only active segment guarded by a
// writer lock, and an internal/compaction background task that merges
// sealed segments once enough of them have accumulated.
//
// Open replays every segment in the store directory to rebuild the index,
// then starts a fresh active segment. Set and Remove append a record, flush
// it (a direct os.File write carries no in-process buffering to flush), and
// update the index while still holding the writer lock — the ordering the
// rest of the package depends on. Get never touches the writer lock: it
// resolves the index under a shared lock and reads the segment file
// directly, so long compaction scans never stall readers.
package engine

import (
	"context"
	stdErrors "errors"
	"io"

	"github.com/ignitedb/ignite/internal/compaction"
	"github.com/ignitedb/ignite/internal/index"
	"github.com/ignitedb/ignite/internal/record"
	"github.com/ignitedb/ignite/internal/segment"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/filesys"
	"github.com/ignitedb/ignite/pkg/options"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

// Name identifies this engine implementation in the sticky engine marker.
const Name = "kvs"

// Open loads or creates a store rooted at config.Dir: it ensures the
// directory exists, replays every segment in ascending id order to rebuild
// the index, and opens a fresh active segment one past the highest id seen.
func Open(ctx context.Context, config *Config) (*Engine, error) {
	if config == nil || config.Dir == "" || config.Options == nil || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "engine configuration is required",
		).WithField("config").WithRule("required").WithProvided(config)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := config.Logger
	if err := filesys.CreateDir(config.Dir, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, config.Dir)
	}

	idx, err := index.New(&index.Config{Logger: log})
	if err != nil {
		return nil, err
	}

	ids, err := segment.List(config.Dir)
	if err != nil {
		return nil, err
	}

	log.Infow("replaying store directory", "dir", config.Dir, "segments", ids)
	for _, id := range ids {
		if err := replaySegment(config.Dir, id, idx); err != nil {
			return nil, err
		}
	}

	var activeID uint64
	if len(ids) > 0 {
		activeID = ids[len(ids)-1] + 1
	}
	if err := segment.ValidateID(activeID, options.MaxSegmentID); err != nil {
		return nil, err
	}

	activeFile, err := segment.OpenWrite(config.Dir, activeID)
	if err != nil {
		return nil, err
	}

	log.Infow("engine opened", "dir", config.Dir, "activeSegment", activeID, "keys", idx.Len())

	return &Engine{
		dir:        config.Dir,
		opts:       config.Options,
		log:        log,
		idx:        idx,
		activeID:   activeID,
		activeFile: activeFile,
		size:       0,
	}, nil
}

// replaySegment stream-decodes segment id and applies every record to idx:
// Set writes a Location, Rm deletes the key. A record that cannot be
// decoded is fatal — an engine must refuse to open over a corrupted log
// rather than silently truncate it.
func replaySegment(dir string, id uint64, idx *index.Index) error {
	f, err := segment.OpenRead(dir, id)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := record.NewDecoder(f, 0)
	for {
		offset := dec.Offset()
		rec, err := dec.Decode()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.ClassifySegmentCorruption(err, id, offset)
		}

		switch rec.Cmd {
		case record.CmdSet:
			idx.Set(rec.Key, index.Location{SegmentID: uint16(id), Offset: offset})
		case record.CmdRm:
			idx.Delete(rec.Key)
		}
	}
}

// Set appends a Set record for key/value to the active segment and points
// the index at it. Before appending, it checks the rollover rule and, if
// the active segment has crossed its size limit, seals it and opens a new
// one.
func (e *Engine) Set(ctx context.Context, key, value string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.writerMu.Lock()
	defer e.writerMu.Unlock()

	if err := e.rolloverIfNeeded(); err != nil {
		return err
	}

	offset := e.size
	segID := e.activeID
	n, err := record.Encode(e.activeFile, record.NewSet(key, value))
	if err != nil {
		return err
	}
	e.size += int64(n)

	if err := segment.Sync(e.activeFile, segID, e.size); err != nil {
		return err
	}

	e.idx.Set(key, index.Location{SegmentID: uint16(segID), Offset: offset})
	return nil
}

// Get resolves key against the index and, if present, reads its value
// straight off disk. It never blocks behind the writer lock.
func (e *Engine) Get(ctx context.Context, key string) (string, bool, error) {
	if e.closed.Load() {
		return "", false, ErrEngineClosed
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	loc, ok := e.idx.Get(key)
	if !ok {
		return "", false, nil
	}

	f, err := segment.OpenRead(e.dir, uint64(loc.SegmentID))
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	if _, err := f.Seek(loc.Offset, io.SeekStart); err != nil {
		return "", false, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to seek to record").
			WithSegmentID(int(loc.SegmentID)).WithOffset(int(loc.Offset))
	}

	dec := record.NewDecoder(f, loc.Offset)
	rec, err := dec.Decode()
	if err != nil {
		return "", false, err
	}
	if rec.Key != key || rec.Cmd != record.CmdSet {
		return "", false, errors.NewIndexCorruptionError("Get", e.idx.Len(), nil).WithKey(key)
	}

	return rec.Value, true, nil
}

// Remove appends an Rm record for key and deletes it from the index. It
// returns an error satisfying errors.IsKeyNotFound if key was already
// absent.
func (e *Engine) Remove(ctx context.Context, key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !e.idx.Has(key) {
		return errors.NewKeyNotFoundError(key)
	}

	e.writerMu.Lock()
	if err := e.rolloverIfNeeded(); err != nil {
		e.writerMu.Unlock()
		return err
	}
	segID := e.activeID
	n, err := record.Encode(e.activeFile, record.NewRemove(key))
	if err != nil {
		e.writerMu.Unlock()
		return err
	}
	e.size += int64(n)
	if err := segment.Sync(e.activeFile, segID, e.size); err != nil {
		e.writerMu.Unlock()
		return err
	}

	e.idx.Delete(key)
	e.writerMu.Unlock()
	return nil
}

// rolloverIfNeeded must be called with writerMu held. If the active segment
// has reached the configured size limit, it seals it and opens a new active
// segment two ids ahead, reserving the intermediate id for a concurrent
// compactor's merged output. It may launch at most one background
// compaction, guarded by a single in-flight flag.
func (e *Engine) rolloverIfNeeded() error {
	if e.size < e.opts.FilesizeLimit {
		return nil
	}

	oldID := e.activeID
	newID := oldID + 2
	reservedID := oldID + 1

	if err := segment.ValidateID(newID, options.MaxSegmentID); err != nil {
		return err
	}

	if err := e.activeFile.Close(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to close sealed segment").
			WithSegmentID(int(oldID))
	}

	newFile, err := segment.OpenWrite(e.dir, newID)
	if err != nil {
		return err
	}

	e.log.Infow("segment rolled over", "sealedID", oldID, "newActiveID", newID, "reservedID", reservedID)

	e.activeFile = newFile
	e.activeID = newID
	e.size = 0

	if newID > 0 && newID%e.opts.CompactionThresh == 0 {
		e.maybeCompact(oldID, reservedID)
	}

	return nil
}

// maybeCompact launches a background compaction merging every sealed
// segment with id <= maxID into mergedID, unless one is already in flight.
func (e *Engine) maybeCompact(maxID, mergedID uint64) {
	if !e.compacting.CompareAndSwap(false, true) {
		return
	}

	e.compactWG.Add(1)
	go func() {
		defer e.compactWG.Done()
		defer e.compacting.Store(false)

		ids, err := segment.List(e.dir)
		if err != nil {
			e.log.Errorw("compaction aborted: failed to list segments", "error", err)
			return
		}

		sealed := make([]uint64, 0, len(ids))
		for _, id := range ids {
			if id <= maxID {
				sealed = append(sealed, id)
			}
		}
		if len(sealed) == 0 {
			return
		}

		plan := compaction.Plan{Dir: e.dir, SealedID: sealed, MaxID: maxID, MergedID: mergedID}
		if err := compaction.Run(plan, e.idx, e.log); err != nil {
			e.log.Errorw("compaction failed", "error", err, "plan", plan)
		}
	}()
}

// Close seals the active segment, waits for any in-flight compaction to
// finish, and releases the index. The engine must not be used after Close
// returns.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.compactWG.Wait()

	e.writerMu.Lock()
	err := e.activeFile.Close()
	e.writerMu.Unlock()
	if err != nil {
		e.log.Errorw("failed to close active segment", "error", err)
	}

	return e.idx.Close()
}

// Name reports this engine's identity for the sticky engine marker.
func (e *Engine) Name() string {
	return Name
}
