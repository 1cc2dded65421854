package fsutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("#"), 0o600))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "b.hcl", "a.hcl", "notes.txt", "nested/c.hcl")

	files, err := FindFilesByExtension(root, ".hcl")

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
}

func TestResolvePaths(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeFiles(t, root, "one.hcl", "dir/two.hcl", "dir/b.yaml", "dir/skip.md")
	ctx := context.Background()

	// --- Act ---
	files, err := ResolvePaths(ctx, []string{".hcl", ".yaml"}, filepath.Join(root, "one.hcl"), root)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "one.hcl"),
		filepath.Join(root, "dir", "b.yaml"),
		filepath.Join(root, "dir", "two.hcl"),
	}, files)

	_, err = ResolvePaths(ctx, []string{".hcl"}, filepath.Join(root, "dir", "skip.md"))
	assert.ErrorContains(t, err, "not a .hcl file")

	_, err = ResolvePaths(ctx, []string{".hcl"}, filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
