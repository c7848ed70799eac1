// Package segment names, opens, enumerates, and deletes the log segment
// files that make up a store directory. A segment is a file named "<id>.log"
// where <id> is a decimal integer no larger than options.MaxSegmentID; the
// package never embeds a prefix or timestamp in the name, so the id alone is
// both the sort key and the uniqueness guarantee the engine relies on.
package segment

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/filesys"
)

const extension = ".log"

// Name returns the filename for segment id, e.g. "42.log".
func Name(id uint64) string {
	return strconv.FormatUint(id, 10) + extension
}

// Path returns the full path to segment id inside dir.
func Path(dir string, id uint64) string {
	return filepath.Join(dir, Name(id))
}

// ParseID extracts the segment id from a filename. It returns ok=false for
// any name that is not a bare decimal integer followed by the segment
// extension — in particular, it rejects a compactor's temporary output file,
// which is exactly the point: replay must skip files that don't parse.
func ParseID(name string) (id uint64, ok bool) {
	if !strings.HasSuffix(name, extension) {
		return 0, false
	}
	digits := strings.TrimSuffix(name, extension)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// List returns the ids of every segment file in dir, sorted ascending.
func List(dir string) ([]uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to list store directory").
			WithPath(dir)
	}

	ids := make([]uint64, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := ParseID(e.Name()); ok {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)
	return ids, nil
}

// OpenWrite opens segment id inside dir for append-only writing, creating it
// if absent.
func OpenWrite(dir string, id uint64) (*os.File, error) {
	path := Path(dir, id)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, Name(id))
	}
	return f, nil
}

// OpenRead opens segment id inside dir read-only.
func OpenRead(dir string, id uint64) (*os.File, error) {
	path := Path(dir, id)
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, Name(id))
	}
	return f, nil
}

// Sync flushes f's writes to stable storage. The engine calls this after
// appending a record so Set and Remove are durable by the time they return.
func Sync(f *os.File, id uint64, offset int64) error {
	if err := f.Sync(); err != nil {
		return errors.ClassifySyncError(err, Name(id), f.Name(), int(offset))
	}
	return nil
}

// Remove deletes segment id from dir. Removing an already-absent segment is
// not an error — a crash between unlink calls during compaction publication
// must not wedge a subsequent retry.
func Remove(dir string, id uint64) error {
	path := Path(dir, id)
	ok, err := filesys.Exists(path)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat segment for removal").
			WithFileName(Name(id)).WithPath(path).WithSegmentID(int(id))
	}
	if !ok {
		return nil
	}
	if err := filesys.DeleteFile(path); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to remove segment").
			WithFileName(Name(id)).WithPath(path).WithSegmentID(int(id))
	}
	return nil
}

// Size returns segment id's current size in bytes.
func Size(dir string, id uint64) (int64, error) {
	info, err := os.Stat(Path(dir, id))
	if err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat segment").
			WithFileName(Name(id)).WithPath(Path(dir, id)).WithSegmentID(int(id))
	}
	return info.Size(), nil
}

// ValidateID reports whether id fits the store's segment-id space.
func ValidateID(id, max uint64) error {
	if id > max {
		return errors.NewStorageError(
			nil, errors.ErrorCodeParse, fmt.Sprintf("segment id %d exceeds maximum %d", id, max),
		).WithSegmentID(int(id))
	}
	return nil
}
