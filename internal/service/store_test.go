package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Spring-Mustache/translate-srt/internal/subtitle"
)

func TestResultStore_AppendOrder(t *testing.T) {
	t.Parallel()

	store := NewResultStore()
	store.Append([]subtitle.TranslatedEntry{{ID: "1"}, {ID: "2"}})
	store.Append([]subtitle.TranslatedEntry{{ID: "3"}})

	snapshot := store.Snapshot()
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, "1", snapshot[0].ID)
	assert.Equal(t, "2", snapshot[1].ID)
	assert.Equal(t, "3", snapshot[2].ID)
}

func TestResultStore_SnapshotIsCopy(t *testing.T) {
	t.Parallel()

	store := NewResultStore()
	store.Append([]subtitle.TranslatedEntry{{ID: "1"}})

	snapshot := store.Snapshot()
	snapshot[0].ID = "mutated"
	assert.Equal(t, "1", store.Snapshot()[0].ID)
}

func TestResultStore_Reset(t *testing.T) {
	t.Parallel()

	store := NewResultStore()
	store.Append([]subtitle.TranslatedEntry{{ID: "1"}})
	store.Reset()
	assert.Zero(t, store.Len())
	assert.Empty(t, store.Snapshot())
}
