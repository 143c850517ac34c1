package chat

// EventKind is the closed set of inbound realtime events. Dispatch happens
// through an explicit switch so adding a kind without a handler is caught by
// review instead of silently falling into a string lookup miss.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindNewMessage
	KindStartTyping
	KindStopTyping
	KindChatJoined
	KindChatLeaved
)

func KindOf(event string) EventKind {
	switch event {
	case EventNewMessage:
		return KindNewMessage
	case EventStartTyping:
		return KindStartTyping
	case EventStopTyping:
		return KindStopTyping
	case EventChatJoined:
		return KindChatJoined
	case EventChatLeaved:
		return KindChatLeaved
	default:
		return KindUnknown
	}
}

func (k EventKind) String() string {
	switch k {
	case KindNewMessage:
		return EventNewMessage
	case KindStartTyping:
		return EventStartTyping
	case KindStopTyping:
		return EventStopTyping
	case KindChatJoined:
		return EventChatJoined
	case KindChatLeaved:
		return EventChatLeaved
	default:
		return "UNKNOWN"
	}
}
