package filesys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")

	require.NoError(t, CreateDir(dir, 0755, true))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// force=true tolerates the directory already existing.
	require.NoError(t, CreateDir(dir, 0755, true))
}

func TestCreateDirRejectsExistingFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "not-a-dir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	require.ErrorIs(t, CreateDir(path, 0755, true), ErrIsNotDir)
}

func TestWriteFileAndExists(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "marker")

	ok, err := Exists(path)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, WriteFile(path, 0644, []byte("hello")))

	ok, err = Exists(path)
	require.NoError(t, err)
	require.True(t, ok)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(contents))
}

func TestDeleteFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "f")
	require.NoError(t, WriteFile(path, 0644, nil))

	require.NoError(t, DeleteFile(path))

	ok, err := Exists(path)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadDirGlobsMatchingPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, WriteFile(filepath.Join(root, "kvs"), 0644, nil))

	matches, err := ReadDir(filepath.Join(root, "*"))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "kvs")}, matches)
}
