package chat

import (
	"net"
	"net/http"

	"ChatGo/logger"
	"ChatGo/tools/ids"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWS is the websocket endpoint. The session cookie is verified and the
// user record loaded before the upgrade; a connection without a valid
// credential is rejected and never reaches the registry.
func (s *Server) HandleWS(c *gin.Context) {
	ident, err := s.auth.Authenticate(c.Request.Context(), c.Request)
	if err != nil {
		logger.Infof("[ws] auth rejected: %v", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "please login to access this route"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[ws] upgrade failed: %v", err)
		return
	}

	client := NewClient(ids.GenerateString(), ident.ID, ident.Name, ws, s.conf.SendQueueSize)
	s.reg.Register(client)
	logger.Infof("[ws] connected user=%s conn=%s", client.UserID, client.ConnID)

	go client.writePump()
	s.readLoop(client)

	// transport closed: synchronous unregister, then the global online
	// broadcast so every viewer drops the departed user.
	s.HandleDisconnect(client)
	closeQuiet(ws)
	logger.Infof("[ws] disconnected user=%s conn=%s", client.UserID, client.ConnID)
}

// readLoop consumes frames in arrival order until the peer goes away.
// Ordering is only guaranteed per connection.
func (s *Server) readLoop(client *Client) {
	for {
		mt, data, rerr := client.WS.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Infof("[ws] peer closed conn=%s err=%v", client.ConnID, rerr)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Infof("[ws] read timeout conn=%s err=%v", client.ConnID, rerr)
			} else {
				logger.Infof("[ws] read err conn=%s err=%v", client.ConnID, rerr)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		frame, perr := ParseFrame(data)
		if perr != nil {
			sample := data
			if len(sample) > 256 {
				sample = sample[:256]
			}
			logger.Warnf("[ws] bad frame conn=%s err=%v sample=%q", client.ConnID, perr, sample)
			continue
		}

		if err := s.Dispatch(client, frame); err != nil {
			logger.Warnf("[ws] dispatch %s conn=%s err=%v", frame.Event, client.ConnID, err)
		}
	}
}
