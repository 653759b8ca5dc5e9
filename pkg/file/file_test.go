package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByExt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"a.srt", "b.SRT", "c.mkv", "nested/d.srt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	matches, err := FindByExt(dir, ".srt")
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("/media", "show.mkv"), ReplaceExt("/media/show.srt", ".mkv"))
	assert.Equal(t, filepath.Join("/media", "show.mkv"), ReplaceExt("/media/show.srt", "mkv"))
	assert.Equal(t, filepath.Join("/media", "show.mkv"), ReplaceExt("/media/show", ".mkv"))
	assert.Equal(t, "", ReplaceExt("", ".mkv"))
}

func TestExists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	assert.False(t, Exists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, Exists(path))
}
