package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfChanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, WriteIfChanged(path, []byte("v1")))
	info1, err := os.Stat(path)
	require.NoError(t, err)

	// Identical content is a no-op; the mtime does not move.
	require.NoError(t, WriteIfChanged(path, []byte("v1")))
	info2, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info1.ModTime(), info2.ModTime())

	require.NoError(t, WriteIfChanged(path, []byte("v2")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}
