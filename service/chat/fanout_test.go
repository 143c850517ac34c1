package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvPayload(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	case <-time.After(2 * time.Second):
		t.Fatalf("no payload for conn=%s", c.ConnID)
		return nil
	}
}

func assertNoPayload(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("unexpected payload for conn=%s: %s", c.ConnID, data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFanoutDeliversToAll(t *testing.T) {
	f := NewFanout(2, 16)
	defer f.Close()

	a := testClient("c1", "u1")
	b := testClient("c2", "u2")

	f.Broadcast([]*Client{a, b}, []byte("hello"))
	assert.Equal(t, "hello", string(recvPayload(t, a)))
	assert.Equal(t, "hello", string(recvPayload(t, b)))
}

func TestFanoutSkipsSlowClient(t *testing.T) {
	f := NewFanout(1, 16)
	defer f.Close()

	slow := NewClient("c1", "u1", "", nil, 1)
	slow.Send <- []byte("stuck") // queue now full
	fast := testClient("c2", "u2")

	f.Broadcast([]*Client{slow, fast}, []byte("next"))
	assert.Equal(t, "next", string(recvPayload(t, fast)))

	// the slow queue still holds only the original payload
	require.Equal(t, "stuck", string(<-slow.Send))
	assertNoPayload(t, slow)
}

func TestFanoutSkipsClosedClient(t *testing.T) {
	f := NewFanout(1, 16)
	defer f.Close()

	dead := testClient("c1", "u1")
	dead.Close()
	live := testClient("c2", "u2")

	f.Broadcast([]*Client{dead, live}, []byte("ping"))
	assert.Equal(t, "ping", string(recvPayload(t, live)))
	assertNoPayload(t, dead)
}

func TestFanoutIgnoresEmptyInput(t *testing.T) {
	f := NewFanout(1, 1)
	defer f.Close()

	f.Broadcast(nil, []byte("x"))
	f.Broadcast([]*Client{testClient("c1", "u1")}, nil)
}

func TestClientCloseIdempotent(t *testing.T) {
	c := testClient("c1", "u1")
	c.Close()
	c.Close()

	select {
	case <-c.Done():
	default:
		t.Fatal("done channel not closed")
	}
}
