package ws

import "sync"

// Subscriber receives topic invalidations; the connection turns them into
// fresh query snapshots.
type Subscriber interface {
	Invalidate(topic string)
}

// Hub is the in-process registry of live subscriptions, keyed by change
// topic. The Redis change feed drives Notify; connections register and
// release themselves as views come and go.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[Subscriber]struct{})}
}

func (h *Hub) Subscribe(s Subscriber, topics ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range topics {
		if _, ok := h.subs[t]; !ok {
			h.subs[t] = make(map[Subscriber]struct{})
		}
		h.subs[t][s] = struct{}{}
	}
}

func (h *Hub) Unsubscribe(s Subscriber, topics ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range topics {
		if members, ok := h.subs[t]; ok {
			delete(members, s)
			if len(members) == 0 {
				delete(h.subs, t)
			}
		}
	}
}

// UnsubscribeAll releases every registration for s. After it returns, s
// receives no further invalidations.
func (h *Hub) UnsubscribeAll(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for t, members := range h.subs {
		delete(members, s)
		if len(members) == 0 {
			delete(h.subs, t)
		}
	}
}

func (h *Hub) Notify(topic string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[topic] {
		s.Invalidate(topic)
	}
}
