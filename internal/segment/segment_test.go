package segment

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameAndParseID(t *testing.T) {
	require.Equal(t, "42.log", Name(42))

	id, ok := ParseID("42.log")
	require.True(t, ok)
	require.Equal(t, uint64(42), id)

	_, ok = ParseID("not-a-segment")
	require.False(t, ok)

	_, ok = ParseID(".compact-abc123.tmp")
	require.False(t, ok)

	_, ok = ParseID("42.logx")
	require.False(t, ok)
}

func TestListSortsAscendingAndSkipsUnparseable(t *testing.T) {
	dir := t.TempDir()

	for _, id := range []uint64{5, 1, 3} {
		f, err := OpenWrite(dir, id)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	require.NoError(t, os.WriteFile(dir+"/.compact-x.tmp", nil, 0644))

	ids, err := List(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 3, 5}, ids)
}

func TestOpenWriteAppendsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	f1, err := OpenWrite(dir, 1)
	require.NoError(t, err)
	_, err = f1.WriteString("hello")
	require.NoError(t, err)
	require.NoError(t, f1.Close())

	f2, err := OpenWrite(dir, 1)
	require.NoError(t, err)
	_, err = f2.WriteString("world")
	require.NoError(t, err)
	require.NoError(t, f2.Close())

	size, err := Size(dir, 1)
	require.NoError(t, err)
	require.Equal(t, int64(len("helloworld")), size)
}

func TestRemoveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Remove(dir, 99))

	f, err := OpenWrite(dir, 99)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, Remove(dir, 99))
	require.NoError(t, Remove(dir, 99))
}

func TestValidateID(t *testing.T) {
	require.NoError(t, ValidateID(65535, 65535))
	require.Error(t, ValidateID(65536, 65535))
}
