package chat

import (
	"context"
	"fmt"
	"time"

	"ChatGo/logger"
	"ChatGo/service/storage"
	"ChatGo/tools/decode"
	"ChatGo/tools/safe"
)

// MessageStore persists chat messages. The gateway calls it from a detached
// task after the broadcast went out; a failing store never takes a delivered
// message back.
type MessageStore interface {
	Create(ctx context.Context, content, sender, chatID string) error
}

type Config struct {
	FanoutWorkers  int
	FanoutQueue    int
	SendQueueSize  int
	PersistTimeout time.Duration // per detached persistence task
}

func (c *Config) norm() {
	if c.FanoutWorkers <= 0 {
		c.FanoutWorkers = 4
	}
	if c.FanoutQueue <= 0 {
		c.FanoutQueue = 1024
	}
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = 256
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = 5 * time.Second
	}
}

// Server is the realtime event router. It binds inbound events to the
// authenticated identity of their connection, resolves recipients through
// the registry and re-emits to exactly those connections; NEW_MESSAGE also
// schedules the durable write.
type Server struct {
	reg    *Registry
	fan    *Fanout
	store  MessageStore
	mirror storage.PresenceMirror
	auth   *Authenticator
	conf   Config
}

func NewServer(store MessageStore, mirror storage.PresenceMirror, auth *Authenticator, conf Config) *Server {
	conf.norm()
	if mirror == nil {
		mirror = storage.NewNoopMirror()
	}
	return &Server{
		reg:    NewRegistry(),
		fan:    NewFanout(conf.FanoutWorkers, conf.FanoutQueue),
		store:  store,
		mirror: mirror,
		auth:   auth,
		conf:   conf,
	}
}

func (s *Server) Registry() *Registry { return s.reg }

// Dispatch routes one inbound frame. The kind switch is exhaustive over the
// closed event set; unknown events are logged and dropped.
func (s *Server) Dispatch(c *Client, f *Frame) error {
	switch KindOf(f.Event) {
	case KindNewMessage:
		return s.handleNewMessage(c, f)
	case KindStartTyping:
		return s.handleTyping(c, f, EventStartTyping)
	case KindStopTyping:
		return s.handleTyping(c, f, EventStopTyping)
	case KindChatJoined:
		return s.handleChatJoined(c, f)
	case KindChatLeaved:
		return s.handleChatLeaved(c, f)
	case KindUnknown:
		logger.Warnf("[router] unknown event %q from user=%s conn=%s", f.Event, c.UserID, c.ConnID)
		return nil
	}
	return nil
}

// handleNewMessage broadcasts the transient message view plus an alert to
// the chat members, then persists the durable record from a detached task.
// Broadcast is optimistic: it is never blocked on or rolled back by the
// write.
func (s *Server) handleNewMessage(c *Client, f *Frame) error {
	p, err := decode.DecodeMap[NewMessageIn](f.Data)
	if err != nil {
		return fmt.Errorf("NEW_MESSAGE payload: %w", err)
	}

	view := NewMessageView(c, p.ChatID, p.Message)
	msgFrame, err := BuildFrame(EventNewMessage, NewMessageOut{ChatID: p.ChatID, Message: view})
	if err != nil {
		return err
	}
	alertFrame, err := BuildFrame(EventNewMessageAlert, ChatIDOut{ChatID: p.ChatID})
	if err != nil {
		return err
	}

	targets := s.reg.Resolve(p.Members)
	s.fan.Broadcast(targets, msgFrame)
	s.fan.Broadcast(targets, alertFrame)

	content, sender, chatID := p.Message, c.UserID, p.ChatID
	safe.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.conf.PersistTimeout)
		defer cancel()
		if err := s.store.Create(ctx, content, sender, chatID); err != nil {
			logger.Errorf("[router] persist message chat=%s sender=%s: %v", chatID, sender, err)
		}
	})
	return nil
}

// handleTyping forwards START_TYPING / STOP_TYPING to the members, minus the
// connection that produced it (the sender already knows). Other devices of
// the same user still get it. No persistence.
func (s *Server) handleTyping(c *Client, f *Frame, event string) error {
	p, err := decode.DecodeMap[TypingIn](f.Data)
	if err != nil {
		return fmt.Errorf("%s payload: %w", event, err)
	}

	frame, err := BuildFrame(event, ChatIDOut{ChatID: p.ChatID})
	if err != nil {
		return err
	}

	resolved := s.reg.Resolve(p.Members)
	targets := make([]*Client, 0, len(resolved))
	for _, t := range resolved {
		if t.ConnID != c.ConnID {
			targets = append(targets, t)
		}
	}
	s.fan.Broadcast(targets, frame)
	return nil
}

func (s *Server) handleChatJoined(c *Client, f *Frame) error {
	p, err := decode.DecodeMap[PresenceIn](f.Data)
	if err != nil {
		return fmt.Errorf("CHAT_JOINED payload: %w", err)
	}

	if !s.reg.MarkOnline(p.UserID) {
		logger.Warnf("[router] CHAT_JOINED for user=%s with no live connection", p.UserID)
		return nil
	}
	s.mirrorAsync(func(ctx context.Context) { s.mirror.SetOnline(ctx, p.UserID) })

	return s.broadcastOnline(s.reg.Resolve(p.Members))
}

func (s *Server) handleChatLeaved(c *Client, f *Frame) error {
	p, err := decode.DecodeMap[PresenceIn](f.Data)
	if err != nil {
		return fmt.Errorf("CHAT_LEAVED payload: %w", err)
	}

	s.reg.MarkOffline(p.UserID)
	s.mirrorAsync(func(ctx context.Context) { s.mirror.SetOffline(ctx, p.UserID) })

	return s.broadcastOnline(s.reg.Resolve(p.Members))
}

// HandleDisconnect runs when the transport reports the connection closed.
// The registry entry is removed synchronously, then the updated online set
// goes to every remaining connection. The broadcast is global on purpose:
// the router does not know which chats observed the departed user, so a
// scoped broadcast could leave stale presence on some screens.
func (s *Server) HandleDisconnect(c *Client) {
	c.Close()
	userID, last := s.reg.Unregister(c.ConnID)
	if userID == "" {
		return
	}
	if last {
		s.mirrorAsync(func(ctx context.Context) { s.mirror.SetOffline(ctx, userID) })
	}
	if err := s.broadcastOnline(s.reg.AllClients()); err != nil {
		logger.Errorf("[router] online broadcast after disconnect user=%s: %v", userID, err)
	}
}

func (s *Server) broadcastOnline(targets []*Client) error {
	frame, err := BuildFrame(EventOnlineUsers, s.reg.SnapshotOnline())
	if err != nil {
		return err
	}
	s.fan.Broadcast(targets, frame)
	return nil
}

func (s *Server) mirrorAsync(f func(ctx context.Context)) {
	safe.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		f(ctx)
	})
}
