// Package compaction implements the background merge that reclaims space
// held by overwritten and removed records. It runs in two phases: a
// read-locked scan of the sealed segments into a temporary file, followed by
// a write-locked publication that atomically renames the temp file into the
// store directory and repoints the index — without ever blocking writers
// during the (potentially long) scan phase.
package compaction

import (
	"os"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ignitedb/ignite/internal/index"
	"github.com/ignitedb/ignite/internal/record"
	"github.com/ignitedb/ignite/internal/segment"
	"github.com/ignitedb/ignite/pkg/errors"
)

// Plan describes one compaction cycle: merge every sealed segment with id <=
// MaxID into a fresh segment at MergedID.
type Plan struct {
	Dir      string
	SealedID []uint64
	MaxID    uint64
	MergedID uint64
}

// pendingSwap is one key whose index entry should move to the merged
// segment, provided the key has not been superseded since the scan.
type pendingSwap struct {
	key    string
	oldLoc index.Location
	newLoc index.Location
}

// Run executes one compaction cycle against idx. It is safe to call
// concurrently with Set/Get/Remove; callers are responsible for ensuring at
// most one Run is in flight at a time (the engine enforces this with a
// single-flight flag).
func Run(plan Plan, idx *index.Index, log *zap.SugaredLogger) error {
	log.Infow("compaction starting", "sealedSegments", plan.SealedID, "mergedID", plan.MergedID, "maxID", plan.MaxID)

	sealed := append([]uint64(nil), plan.SealedID...)
	sort.Slice(sealed, func(i, j int) bool { return sealed[i] < sealed[j] })

	tmp, err := os.CreateTemp(plan.Dir, ".compact-*.tmp")
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create compaction temp file").WithPath(plan.Dir)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed into place

	snapshot := idx.Snapshot()

	var swaps []pendingSwap
	var tmpSize int64

	for _, id := range sealed {
		if err := scanSegment(plan.Dir, id, plan.MergedID, snapshot, tmp, &tmpSize, &swaps); err != nil {
			tmp.Close()
			return err
		}
	}

	if err := segment.Sync(tmp, plan.MergedID, tmpSize); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to close compaction temp file").WithPath(tmpPath)
	}

	mergedPath := segment.Path(plan.Dir, plan.MergedID)
	if err := os.Rename(tmpPath, mergedPath); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to publish merged segment").
			WithPath(mergedPath).WithSegmentID(int(plan.MergedID))
	}

	published := 0
	for _, s := range swaps {
		if idx.CompareAndSwap(s.key, s.oldLoc, s.newLoc) {
			published++
		}
	}

	var unlinkErr error
	for _, id := range sealed {
		if err := segment.Remove(plan.Dir, id); err != nil {
			unlinkErr = multierr.Append(unlinkErr, err)
		}
	}
	if unlinkErr != nil {
		log.Errorw("failed to unlink one or more compacted segments", "error", unlinkErr)
	}

	log.Infow("compaction finished",
		"mergedID", plan.MergedID, "recordsCopied", len(swaps), "keysRepointed", published, "mergedBytes", tmpSize)
	return nil
}

// scanSegment stream-decodes segment id and, for every Set record that is
// still the index's authoritative location for its key, copies it into tmp
// and queues the pending (old, new) location swap for publication.
func scanSegment(
	dir string,
	id uint64,
	mergedID uint64,
	snapshot map[string]index.Location,
	tmp *os.File,
	tmpSize *int64,
	swaps *[]pendingSwap,
) error {
	f, err := segment.OpenRead(dir, id)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := record.NewDecoder(f, 0)
	for {
		readOffset := dec.Offset()
		rec, err := dec.Decode()
		if err != nil {
			break // io.EOF ends the stream; any other error is unreachable for a sealed, already-replayed segment
		}
		if rec.Cmd != record.CmdSet {
			continue
		}

		loc, ok := snapshot[rec.Key]
		if !ok || loc.SegmentID != uint16(id) || loc.Offset != readOffset {
			continue // superseded — this record is garbage
		}

		n, err := record.Encode(tmp, rec)
		if err != nil {
			return err
		}

		*swaps = append(*swaps, pendingSwap{
			key:    rec.Key,
			oldLoc: loc,
			newLoc: index.Location{SegmentID: uint16(mergedID), Offset: *tmpSize},
		})
		*tmpSize += int64(n)
	}

	return nil
}
