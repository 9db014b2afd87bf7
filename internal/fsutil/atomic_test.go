package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteFileFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	err := WriteFile(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return fmt.Errorf("encoder failed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoder failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestStageCommit(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "sub", "b.txt")

	var s Stage
	require.NoError(t, s.WriteFile(a, writeString("first")))
	require.NoError(t, s.WriteFile(b, writeString("second")))
	assert.Equal(t, 2, s.Len())

	_, err := os.Stat(a)
	assert.True(t, os.IsNotExist(err), "staged files are not visible before commit")

	require.NoError(t, s.Commit())
	assert.Equal(t, 0, s.Len())
	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
	data, err = os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestStageAbortAfterLaterFailure(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(a, []byte("original"), 0644))

	var s Stage
	require.NoError(t, s.WriteFile(a, writeString("replacement")))
	err := s.WriteFile(filepath.Join(dir, "b.txt"), func(w io.Writer) error {
		return fmt.Errorf("encoder failed")
	})
	require.Error(t, err)
	assert.Equal(t, 1, s.Len())
	s.Abort()

	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "every temporary file is removed")
}
