package evolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	root := t.TempDir()
	analysis := baseAnalysis()
	analysis.ProjectRoot = root

	require.NoError(t, SaveSnapshot(root, analysis))

	snap, err := LoadSnapshot(root)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Equal(t, root, snap.Analysis.ProjectRoot)
	assert.Equal(t, analysis.Framework, snap.Analysis.Framework)
	assert.Empty(t, Diff(analysis, snap.Analysis), "a reloaded snapshot diffs clean against its source")
}

func TestSnapshot_AbsentIsNotAnError(t *testing.T) {
	snap, err := LoadSnapshot(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshot_VersionMismatchTreatedAsAbsent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".crewkit"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, ".crewkit", "snapshot.json"),
		[]byte(`{"version":"0","analysis":{}}`), 0644))

	snap, err := LoadSnapshot(root)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshot_CorruptFileIsAnError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".crewkit"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, ".crewkit", "snapshot.json"),
		[]byte("{corrupt"), 0644))

	_, err := LoadSnapshot(root)
	assert.Error(t, err)
}
