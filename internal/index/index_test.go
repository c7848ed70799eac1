package index

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(&Config{Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	return idx
}

func TestSetGetDelete(t *testing.T) {
	idx := newTestIndex(t)

	_, ok := idx.Get("missing")
	require.False(t, ok)

	loc := Location{SegmentID: 1, Offset: 10}
	idx.Set("k", loc)

	got, ok := idx.Get("k")
	require.True(t, ok)
	require.Equal(t, loc, got)

	require.True(t, idx.Delete("k"))
	require.False(t, idx.Delete("k"))

	_, ok = idx.Get("k")
	require.False(t, ok)
}

func TestOverwriteReplacesLocation(t *testing.T) {
	idx := newTestIndex(t)

	idx.Set("k", Location{SegmentID: 1, Offset: 0})
	idx.Set("k", Location{SegmentID: 1, Offset: 50})

	got, ok := idx.Get("k")
	require.True(t, ok)
	require.Equal(t, Location{SegmentID: 1, Offset: 50}, got)
}

func TestCompareAndSwap(t *testing.T) {
	idx := newTestIndex(t)

	original := Location{SegmentID: 1, Offset: 0}
	idx.Set("k", original)

	merged := Location{SegmentID: 7, Offset: 100}
	require.True(t, idx.CompareAndSwap("k", original, merged))

	got, _ := idx.Get("k")
	require.Equal(t, merged, got)

	// A stale expected location must not clobber a newer write.
	require.False(t, idx.CompareAndSwap("k", original, Location{SegmentID: 9, Offset: 0}))
	got, _ = idx.Get("k")
	require.Equal(t, merged, got)
}

func TestSnapshotIsACopy(t *testing.T) {
	idx := newTestIndex(t)
	idx.Set("a", Location{SegmentID: 1, Offset: 0})

	snap := idx.Snapshot()
	idx.Set("b", Location{SegmentID: 1, Offset: 20})

	_, ok := snap["b"]
	require.False(t, ok, "snapshot must not observe writes made after it was taken")
}

func TestCloseTwiceReturnsErrIndexClosed(t *testing.T) {
	idx := newTestIndex(t)
	idx.Set("a", Location{SegmentID: 1, Offset: 0})

	require.NoError(t, idx.Close())
	require.ErrorIs(t, idx.Close(), ErrIndexClosed)
}
