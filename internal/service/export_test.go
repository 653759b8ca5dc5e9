package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spring-Mustache/translate-srt/internal/subtitle"
)

func TestExport_ThreeTracks(t *testing.T) {
	t.Parallel()

	store := NewResultStore()
	store.Append([]subtitle.TranslatedEntry{
		{
			ID:         "1",
			TimeRange:  "00:00:01,000 --> 00:00:02,000",
			Speaker:    "Nam 1",
			Vietnamese: "Xin chào",
			English:    "Hello",
			Chinese:    "你好",
		},
	})

	dir := t.TempDir()
	exports, err := Export(store, dir)
	require.NoError(t, err)
	require.Len(t, exports, 3)

	for _, export := range exports {
		assert.Equal(t, "text/srt", export.MIMEType)
		assert.FileExists(t, export.Path)
	}

	viet, err := os.ReadFile(filepath.Join(dir, "subtitle_vietnamese.srt"))
	require.NoError(t, err)
	assert.Equal(t, "1\n00:00:01,000 --> 00:00:02,000\n[Nam 1] Xin chào\n", string(viet))
}

func TestExport_EmptyStore(t *testing.T) {
	t.Parallel()

	_, err := Export(NewResultStore(), t.TempDir())
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrValidation))
}

func TestExport_PartialResults(t *testing.T) {
	t.Parallel()

	// results from batches before a failure remain exportable
	store := NewResultStore()
	store.Append([]subtitle.TranslatedEntry{
		{ID: "1", TimeRange: "00:00:01,000 --> 00:00:02,000", English: "partial"},
	})

	exports, err := Export(store, t.TempDir())
	require.NoError(t, err)
	assert.Len(t, exports, 3)
}

func TestExport_BadOutputDir(t *testing.T) {
	t.Parallel()

	store := NewResultStore()
	store.Append([]subtitle.TranslatedEntry{{ID: "1", TimeRange: "t", English: "x"}})

	_, err := Export(store, filepath.Join(t.TempDir(), "does", "not", "exist"))
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrFileWrite))
}
