package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"ChatGo/tools/ids"
)

// Wire event names. These must match the web client verbatim.
const (
	EventNewMessage      = "NEW_MESSAGE"
	EventNewMessageAlert = "NEW_MESSAGE_ALERT"
	EventStartTyping     = "START_TYPING"
	EventStopTyping      = "STOP_TYPING"
	EventChatJoined      = "CHAT_JOINED"
	EventChatLeaved      = "CHAT_LEAVED"
	EventOnlineUsers     = "ONLINE_USERS"
)

// Frame is the wire envelope in both directions: {"event": ..., "data": ...}.
// Inbound data stays a generic map until the event kind selects its payload
// type (see tools/decode).
type Frame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

func ParseFrame(raw []byte) (*Frame, error) {
	f := &Frame{}
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, fmt.Errorf("unmarshal frame: %w", err)
	}
	if f.Event == "" {
		return nil, fmt.Errorf("frame has no event")
	}
	return f, nil
}

func BuildFrame(event string, data any) ([]byte, error) {
	b, err := json.Marshal(struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("marshal frame %s: %w", event, err)
	}
	return b, nil
}

// ===== Inbound payloads =====

type NewMessageIn struct {
	ChatID  string   `json:"chatId"`
	Members []string `json:"members"`
	Message string   `json:"message"`
}

type TypingIn struct {
	ChatID  string   `json:"chatId"`
	Members []string `json:"members"`
}

// PresenceIn is shared by CHAT_JOINED and CHAT_LEAVED.
type PresenceIn struct {
	UserID  string   `json:"userId"`
	Members []string `json:"members"`
}

// ===== Outbound payloads =====

type SenderView struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// MessageView is the transient realtime message: ephemeral id and sender
// snapshot included so clients render without a lookup. Only a subset of it
// is persisted.
type MessageView struct {
	ID        string     `json:"_id"`
	Content   string     `json:"content"`
	Sender    SenderView `json:"sender"`
	Chat      string     `json:"chat"`
	CreatedAt string     `json:"createdAt"`
}

type NewMessageOut struct {
	ChatID  string      `json:"chatId"`
	Message MessageView `json:"message"`
}

// ChatIDOut covers NEW_MESSAGE_ALERT and the typing events.
type ChatIDOut struct {
	ChatID string `json:"chatId"`
}

// NewMessageView builds the realtime view for a message sent by c.
func NewMessageView(c *Client, chatID, content string) MessageView {
	return MessageView{
		ID:        ids.GenerateString(),
		Content:   content,
		Sender:    SenderView{ID: c.UserID, Name: c.Name},
		Chat:      chatID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
