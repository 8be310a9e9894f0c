package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestWalkerEnumerateDirectory(t *testing.T) {
	tmp := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "subdir", "deeper"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "file1.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "subdir", "file2.txt"), []byte("world!"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "subdir", "deeper", "file3.txt"), nil, 0644))

	w, err := NewWalker()
	require.NoError(t, err)

	entries, err := w.Enumerate(context.Background(), tmp)
	require.NoError(t, err)

	// Directories are not entries and results are sorted
	assert.Equal(t, []string{
		filepath.Join(tmp, "file1.txt"),
		filepath.Join(tmp, "subdir", "deeper", "file3.txt"),
		filepath.Join(tmp, "subdir", "file2.txt"),
	}, paths(entries))

	for _, e := range entries {
		assert.False(t, e.ModTime.IsZero(), "mod time missing for %s", e.Path)
	}
	assert.Equal(t, int64(6), entries[2].Size)
}

func TestWalkerEnumerateSingleFile(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "only.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "sibling.txt"), []byte("y"), 0644))

	w, err := NewWalker()
	require.NoError(t, err)

	entries, err := w.Enumerate(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, paths(entries))
}

func TestWalkerEnumerateMissingRoot(t *testing.T) {
	w, err := NewWalker()
	require.NoError(t, err)

	entries, err := w.Enumerate(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWalkerEnumerateEmptyDirectory(t *testing.T) {
	w, err := NewWalker()
	require.NoError(t, err)

	entries, err := w.Enumerate(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWalkerIgnorePatterns(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, ".git", "objects"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".git", "objects", "abc"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "main.go"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "main.go.swp"), nil, 0644))

	w, err := NewWalker(WithIgnore(".git/**", "**/*.swp"))
	require.NoError(t, err)

	entries, err := w.Enumerate(context.Background(), tmp)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmp, "main.go")}, paths(entries))
}

func TestWalkerRejectsBadPattern(t *testing.T) {
	_, err := NewWalker(WithIgnore("[unterminated"))
	assert.Error(t, err)
}

func TestWalkerSymlinkToFile(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "target.txt")
	link := filepath.Join(tmp, "link.txt")
	require.NoError(t, os.WriteFile(target, []byte("data"), 0644))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	w, err := NewWalker()
	require.NoError(t, err)

	entries, err := w.Enumerate(context.Background(), tmp)
	require.NoError(t, err)
	assert.Equal(t, []string{link, target}, paths(entries))

	// Dangling links are skipped rather than failing the walk
	require.NoError(t, os.Remove(target))
	entries, err = w.Enumerate(context.Background(), tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWalkerCancelled(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a"), nil, 0644))

	w, err := NewWalker(WithWorkers(4))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = w.Enumerate(ctx, tmp)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWalkerExists(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "a.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	w, err := NewWalker()
	require.NoError(t, err)

	ok, err := w.Exists(file)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = w.Exists(tmp)
	require.NoError(t, err)
	assert.False(t, ok, "directories are not leaf entries")

	require.NoError(t, os.Remove(file))
	ok, err = w.Exists(file)
	require.NoError(t, err)
	assert.False(t, ok)
}
