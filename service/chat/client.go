package chat

import (
	"sync"
	"time"

	"ChatGo/logger"

	"github.com/gorilla/websocket"
)

const writeDeadline = 5 * time.Second

// Client represents one authenticated websocket connection. A user may have
// several clients at once, each with its own send queue consumed by a single
// writer goroutine (gorilla conns do not allow concurrent writes).
type Client struct {
	ConnID string // unique within this gateway
	UserID string
	Name   string // display name snapshot, taken at authentication time

	WS   *websocket.Conn
	Send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a client with a buffered send queue.
func NewClient(connID, userID, name string, ws *websocket.Conn, sendQueueSize int) *Client {
	if sendQueueSize <= 0 {
		sendQueueSize = 256
	}
	return &Client{
		ConnID: connID,
		UserID: userID,
		Name:   name,
		WS:     ws,
		Send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}
}

// Close marks the client dead; safe to call more than once. The fan-out stops
// queueing for it and the write pump drains out.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Client) Done() <-chan struct{} { return c.done }

// writePump is the single writer for this connection.
func (c *Client) writePump() {
	for {
		select {
		case <-c.done:
			_ = c.WS.SetWriteDeadline(time.Now().Add(writeDeadline))
			_ = c.WS.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-c.Send:
			if err := writeText(c.WS, data); err != nil {
				logger.Debugf("[ws] write failed conn=%s user=%s err=%v", c.ConnID, c.UserID, err)
				c.Close()
				return
			}
		}
	}
}

func writeText(conn *websocket.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func closeQuiet(c *websocket.Conn) {
	if c != nil {
		_ = c.Close()
	}
}
