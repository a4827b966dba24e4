package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryBindAndLookup(t *testing.T) {
	d := NewDirectory()

	s := d.Bind("c1", "alice", "devops")
	assert.Equal(t, Session{ConnID: "c1", Username: "alice", Room: "devops"}, s)

	got, ok := d.Lookup("c1")
	require.True(t, ok)
	assert.Equal(t, s, got)

	_, ok = d.Lookup("c2")
	assert.False(t, ok)
}

func TestDirectoryRebindReplaces(t *testing.T) {
	d := NewDirectory()
	d.Bind("c1", "alice", "devops")
	d.Bind("c1", "alice", "sports")

	got, _ := d.Lookup("c1")
	assert.Equal(t, "sports", got.Room)
	assert.Equal(t, 1, d.Len())
	assert.Zero(t, d.Bound("alice", "devops"))
	assert.Equal(t, 1, d.Bound("alice", "sports"))
}

func TestDirectoryBoundCountsConnections(t *testing.T) {
	d := NewDirectory()
	d.Bind("c1", "alice", "devops")
	d.Bind("c2", "alice", "devops")
	d.Bind("c3", "bob", "devops")

	assert.Equal(t, 2, d.Bound("alice", "devops"))

	d.Unbind("c1")
	assert.Equal(t, 1, d.Bound("alice", "devops"))

	d.Unbind("c2")
	d.Unbind("c2")
	d.Unbind("unknown")
	assert.Zero(t, d.Bound("alice", "devops"))
	assert.Equal(t, 1, d.Len())
}
