package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func projectFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"demo","dependencies":{"next":"14.0.0"}}`)
	writeFile(t, root, "src/index.ts", "export {}\n")
	writeFile(t, root, "src/util/format.ts", "export const x = 1\n")
	return root
}

func TestComputeFingerprint_Stable(t *testing.T) {
	root := projectFixture(t)
	ctx := context.Background()

	first, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)
	second, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)

	assert.Equal(t, first, second, "fingerprint must be stable for an unchanged tree")
	assert.NotEmpty(t, first)
}

func TestComputeFingerprint_AddedSourceFileChangesHash(t *testing.T) {
	root := projectFixture(t)
	ctx := context.Background()

	before, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)

	writeFile(t, root, "src/new.ts", "export {}\n")

	after, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)
	assert.NotEqual(t, before, after, "adding a file under a source root must invalidate")
}

func TestComputeFingerprint_SourceContentEditDoesNotChangeHash(t *testing.T) {
	root := projectFixture(t)
	ctx := context.Background()

	before, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)

	// Source files are tracked by listing, not content.
	writeFile(t, root, "src/index.ts", "export {}\n// a comment\n")

	after, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, before, after, "editing listed-only file content must not invalidate")
}

func TestComputeFingerprint_ManifestEditChangesHash(t *testing.T) {
	root := projectFixture(t)
	ctx := context.Background()

	before, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)

	writeFile(t, root, "package.json", `{"name":"demo","dependencies":{"next":"15.0.0"}}`)

	after, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)
	assert.NotEqual(t, before, after, "manifests are content-hashed")
}

func TestComputeFingerprint_ExcludedDirsIgnored(t *testing.T) {
	root := projectFixture(t)
	ctx := context.Background()

	before, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)

	writeFile(t, root, "src/node_modules/dep/index.js", "module.exports = {}\n")
	writeFile(t, root, "src/.hidden/secret.ts", "export {}\n")

	after, err := ComputeFingerprint(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, before, after, "vendored and hidden entries are excluded from the listing")
}

func TestComputeFingerprint_InputValidation(t *testing.T) {
	ctx := context.Background()

	_, err := ComputeFingerprint(ctx, "")
	assert.Error(t, err)

	_, err = ComputeFingerprint(ctx, "relative/path")
	assert.Error(t, err)
}
