package registry

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named struct {
	id   string
	name string
}

func (n named) ObjectID() string { return n.id }

type other struct{ id string }

func (o other) ObjectID() string { return o.id }

func newTestRegistry() (*Registry, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return New(logger), &buf
}

func TestRegistryAddAndGet(t *testing.T) {
	r, _ := newTestRegistry()

	require.NoError(t, r.Add(named{id: "A1", name: "first"}))
	require.NoError(t, r.Add(other{id: "C1"}))

	obj, ok := r.Get("A1")
	require.True(t, ok)
	assert.Equal(t, "first", obj.(named).name)
	assert.True(t, r.Has("C1"))
	assert.False(t, r.Has("missing"))
	assert.Equal(t, []string{"A1", "C1"}, r.IDs())
	assert.Equal(t, 2, r.Len())
}

func TestRegistryDuplicateKeepsFirst(t *testing.T) {
	r, logs := newTestRegistry()

	require.NoError(t, r.Add(named{id: "A1", name: "first"}))
	err := r.Add(named{id: "A1", name: "second"})

	assert.ErrorIs(t, err, ErrDuplicateID)
	obj, _ := r.Get("A1")
	assert.Equal(t, "first", obj.(named).name)
	assert.Equal(t, 1, r.Len())
	assert.Contains(t, logs.String(), "Duplicate ID found")
}

func TestRegistryRejectsEmptyID(t *testing.T) {
	r, _ := newTestRegistry()

	err := r.Add(named{})

	assert.ErrorIs(t, err, ErrEmptyID)
	assert.Zero(t, r.Len())
}

func TestLookup(t *testing.T) {
	r, _ := newTestRegistry()
	require.NoError(t, r.Add(named{id: "A1", name: "first"}))
	require.NoError(t, r.Add(other{id: "C1"}))

	n, ok := Lookup[named](r, "A1")
	assert.True(t, ok)
	assert.Equal(t, "first", n.name)

	_, ok = Lookup[named](r, "C1")
	assert.False(t, ok, "wrong type must not match")

	_, ok = Lookup[other](r, "missing")
	assert.False(t, ok)
}

func TestIDsReturnsCopy(t *testing.T) {
	r, _ := newTestRegistry()
	require.NoError(t, r.Add(named{id: "A1"}))

	ids := r.IDs()
	ids[0] = "changed"

	assert.Equal(t, []string{"A1"}, r.IDs())
}
