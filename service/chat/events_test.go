package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	f, err := ParseFrame([]byte(`{"event":"NEW_MESSAGE","data":{"chatId":"ch1","message":"hi"}}`))
	require.NoError(t, err)
	assert.Equal(t, EventNewMessage, f.Event)
	assert.Equal(t, "ch1", f.Data["chatId"])
	assert.Equal(t, "hi", f.Data["message"])
}

func TestParseFrameErrors(t *testing.T) {
	_, err := ParseFrame([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseFrame([]byte(`{"data":{}}`))
	assert.Error(t, err, "frame without event must be rejected")

	f, err := ParseFrame([]byte(`{"event":"START_TYPING"}`))
	require.NoError(t, err)
	assert.Nil(t, f.Data)
}

func TestBuildFrameEnvelope(t *testing.T) {
	raw, err := BuildFrame(EventOnlineUsers, []string{"u1", "u2"})
	require.NoError(t, err)

	var out struct {
		Event string   `json:"event"`
		Data  []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, EventOnlineUsers, out.Event)
	assert.Equal(t, []string{"u1", "u2"}, out.Data)
}

func TestKindOf(t *testing.T) {
	cases := map[string]EventKind{
		EventNewMessage:  KindNewMessage,
		EventStartTyping: KindStartTyping,
		EventStopTyping:  KindStopTyping,
		EventChatJoined:  KindChatJoined,
		EventChatLeaved:  KindChatLeaved,
		"ONLINE_USERS":   KindUnknown, // outbound only, never dispatched
		"whatever":       KindUnknown,
		"":               KindUnknown,
	}
	for event, want := range cases {
		assert.Equal(t, want, KindOf(event), "event %q", event)
	}
}

func TestNewMessageView(t *testing.T) {
	c := testClient("c1", "u1")
	v := NewMessageView(c, "ch1", "hello")

	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "hello", v.Content)
	assert.Equal(t, "u1", v.Sender.ID)
	assert.Equal(t, c.Name, v.Sender.Name)
	assert.Equal(t, "ch1", v.Chat)
	assert.NotEmpty(t, v.CreatedAt)

	v2 := NewMessageView(c, "ch1", "hello")
	assert.NotEqual(t, v.ID, v2.ID, "each view gets a fresh id")
}
