package ws

import "sync"

// Registry tracks which users currently hold live connections on one
// channel. A user id maps to the set of their open connections
// (multi-device); the entry is removed as soon as the set empties, so a
// present key always means online.
type Registry struct {
	mu      sync.RWMutex
	clients map[int]map[*Client]struct{}
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[int]map[*Client]struct{})}
}

func (r *Registry) Bind(userID int, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clients[userID] == nil {
		r.clients[userID] = make(map[*Client]struct{})
	}
	r.clients[userID][c] = struct{}{}
}

func (r *Registry) Unbind(userID int, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.clients[userID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(r.clients, userID)
	}
}

func (r *Registry) Online(userID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients[userID]) > 0
}

// Connections returns a snapshot of the user's live connections, empty if
// offline.
func (r *Registry) Connections(userID int) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*Client, 0, len(r.clients[userID]))
	for c := range r.clients[userID] {
		conns = append(conns, c)
	}
	return conns
}
