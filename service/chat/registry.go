package chat

import (
	"sort"
	"sync"
)

// Registry is the process-wide presence table: which users hold live
// connections on this gateway, and which of them are currently inside a chat
// view (the online set). It is created empty at process start and never
// persisted; clients rebuild it by reconnecting.
//
// The online set is driven only by explicit CHAT_JOINED / CHAT_LEAVED
// signals plus the forced removal when a user's last connection goes away.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string][]*Client // user -> conns in registration order
	byConn map[string]*Client   // conn_id -> conn
	online map[string]struct{}  // users present in a chat view
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string][]*Client),
		byConn: make(map[string]*Client),
		online: make(map[string]struct{}),
	}
}

// Register adds a connection under its user. Idempotent per
// (user, conn_id) pair; a user may hold several connections (devices/tabs).
func (r *Registry) Register(c *Client) {
	if c == nil || c.ConnID == "" || c.UserID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byConn[c.ConnID]; exists {
		return
	}
	r.byConn[c.ConnID] = c
	r.byUser[c.UserID] = append(r.byUser[c.UserID], c)
}

// Unregister removes the connection; unknown ids are a no-op. When the last
// connection of a user goes away the user is also dropped from the online
// set. Returns the owning user id and whether this was its last connection.
func (r *Registry) Unregister(connID string) (userID string, last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byConn[connID]
	if !ok {
		return "", false
	}
	delete(r.byConn, connID)

	conns := r.byUser[c.UserID]
	for i, cc := range conns {
		if cc.ConnID == connID {
			conns = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(conns) == 0 {
		delete(r.byUser, c.UserID)
		delete(r.online, c.UserID)
		return c.UserID, true
	}
	r.byUser[c.UserID] = conns
	return c.UserID, false
}

// Resolve maps a member identity list to the live connections to notify.
// Offline members contribute nothing. The result is deterministic: member
// order is preserved (first occurrence wins for duplicates) and a user's
// connections come out in registration order.
func (r *Registry) Resolve(members []string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Client
	seen := make(map[string]struct{}, len(members))
	for _, userID := range members {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		out = append(out, r.byUser[userID]...)
	}
	return out
}

// MarkOnline puts a user into the online set. Rejected when the user has no
// live connection: presence in a chat view implies at least one open socket.
func (r *Registry) MarkOnline(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.byUser[userID]) == 0 {
		return false
	}
	r.online[userID] = struct{}{}
	return true
}

func (r *Registry) MarkOffline(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.online, userID)
}

// SnapshotOnline returns the online set, sorted for stable broadcasts.
func (r *Registry) SnapshotOnline() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.online))
	for u := range r.online {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// AllClients lists every live connection, ordered by conn id. Used only for
// the global online-set broadcast after a disconnect.
func (r *Registry) AllClients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.byConn))
	for _, c := range r.byConn {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConnID < out[j].ConnID })
	return out
}

// ListByUser returns the user's live connections in registration order.
func (r *Registry) ListByUser(userID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := r.byUser[userID]
	if len(conns) == 0 {
		return nil
	}
	out := make([]*Client, len(conns))
	copy(out, conns)
	return out
}
