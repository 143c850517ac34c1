package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(connID, userID string) *Client {
	return NewClient(connID, userID, "name-"+userID, nil, 8)
}

func TestRegistryResolveOrder(t *testing.T) {
	r := NewRegistry()
	u1a := testClient("c1", "u1")
	u1b := testClient("c2", "u1")
	u2 := testClient("c3", "u2")
	r.Register(u1a)
	r.Register(u1b)
	r.Register(u2)

	got := r.Resolve([]string{"u2", "u1", "u2"})
	require.Len(t, got, 3)
	assert.Equal(t, "c3", got[0].ConnID)
	assert.Equal(t, "c1", got[1].ConnID)
	assert.Equal(t, "c2", got[2].ConnID)
}

func TestRegistryResolveSkipsOffline(t *testing.T) {
	r := NewRegistry()
	r.Register(testClient("c1", "u1"))

	got := r.Resolve([]string{"u1", "ghost"})
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].UserID)

	assert.Empty(t, r.Resolve([]string{"ghost"}))
	assert.Empty(t, r.Resolve(nil))
}

func TestRegistryRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	c := testClient("c1", "u1")
	r.Register(c)
	r.Register(c)

	assert.Len(t, r.ListByUser("u1"), 1)
}

func TestRegistryRejectsIncompleteClients(t *testing.T) {
	r := NewRegistry()
	r.Register(nil)
	r.Register(testClient("", "u1"))
	r.Register(testClient("c1", ""))

	assert.Empty(t, r.AllClients())
}

func TestRegistryUnregisterLastConnection(t *testing.T) {
	r := NewRegistry()
	r.Register(testClient("c1", "u1"))
	require.True(t, r.MarkOnline("u1"))

	userID, last := r.Unregister("c1")
	assert.Equal(t, "u1", userID)
	assert.True(t, last)
	assert.Empty(t, r.SnapshotOnline())
	assert.Empty(t, r.ListByUser("u1"))

	// second unregister of the same conn is a no-op
	userID, last = r.Unregister("c1")
	assert.Empty(t, userID)
	assert.False(t, last)
}

func TestRegistryUnregisterKeepsOtherDevices(t *testing.T) {
	r := NewRegistry()
	r.Register(testClient("c1", "u1"))
	r.Register(testClient("c2", "u1"))
	require.True(t, r.MarkOnline("u1"))

	userID, last := r.Unregister("c1")
	assert.Equal(t, "u1", userID)
	assert.False(t, last)
	assert.Equal(t, []string{"u1"}, r.SnapshotOnline())

	conns := r.ListByUser("u1")
	require.Len(t, conns, 1)
	assert.Equal(t, "c2", conns[0].ConnID)
}

func TestRegistryUnregisterUnknown(t *testing.T) {
	r := NewRegistry()
	userID, last := r.Unregister("nope")
	assert.Empty(t, userID)
	assert.False(t, last)
}

func TestRegistryMarkOnlineNeedsConnection(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.MarkOnline("ghost"))
	assert.Empty(t, r.SnapshotOnline())

	r.Register(testClient("c1", "u1"))
	assert.True(t, r.MarkOnline("u1"))
	assert.True(t, r.MarkOnline("u1")) // joining twice is fine
	assert.Equal(t, []string{"u1"}, r.SnapshotOnline())
}

func TestRegistryMarkOffline(t *testing.T) {
	r := NewRegistry()
	r.Register(testClient("c1", "u1"))
	require.True(t, r.MarkOnline("u1"))

	r.MarkOffline("u1")
	r.MarkOffline("u1") // repeated leave is a no-op
	assert.Empty(t, r.SnapshotOnline())

	// the connection survives; only chat-view presence dropped
	assert.Len(t, r.ListByUser("u1"), 1)
}

func TestRegistrySnapshotSorted(t *testing.T) {
	r := NewRegistry()
	for _, u := range []string{"zed", "amy", "mid"} {
		r.Register(testClient("c-"+u, u))
		require.True(t, r.MarkOnline(u))
	}
	assert.Equal(t, []string{"amy", "mid", "zed"}, r.SnapshotOnline())
}

func TestRegistryAllClientsSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(testClient("c2", "u1"))
	r.Register(testClient("c1", "u2"))
	r.Register(testClient("c3", "u1"))

	all := r.AllClients()
	require.Len(t, all, 3)
	assert.Equal(t, "c1", all[0].ConnID)
	assert.Equal(t, "c2", all[1].ConnID)
	assert.Equal(t, "c3", all[2].ConnID)
}
