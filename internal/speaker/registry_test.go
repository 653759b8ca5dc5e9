package speaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RecordOrderAndDedup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Record("Nam 1")
	r.Record("Nữ 1")
	r.Record("Nam 1")
	r.Record("")

	assert.Equal(t, []string{"Nam 1", "Nữ 1"}, r.Known())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Hint(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Equal(t, "", r.Hint())

	r.Record("Nam 1")
	assert.Equal(t, "Nam 1", r.Hint())

	r.Record("Nữ 2")
	assert.Equal(t, "Nam 1, Nữ 2", r.Hint())
}

func TestRegistry_Reset(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Record("Nam 1")
	r.Record("Nữ 1")
	r.Reset()

	assert.Empty(t, r.Known())
	assert.Equal(t, "", r.Hint())

	// labels recorded before the reset are insertable again
	r.Record("Nam 1")
	assert.Equal(t, []string{"Nam 1"}, r.Known())
}

func TestRegistry_MonotonicAcrossBatches(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	batches := [][]string{
		{"Nam 1", "Nữ 1"},
		{"Nữ 1", "Nam 2"},
		{"Nam 1"},
	}

	var prior []string
	for _, batch := range batches {
		for _, label := range batch {
			r.Record(label)
		}
		known := r.Known()
		// everything known before the batch is still known after
		assert.Subset(t, known, prior)
		prior = known
	}
	assert.Equal(t, []string{"Nam 1", "Nữ 1", "Nam 2"}, prior)
}
