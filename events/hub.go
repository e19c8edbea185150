package events

import (
	"slices"
	"sync"
)

type session struct {
	userID int
	ch     chan Event
}

// Hub delivers task events to the owner's live sessions. Events for one user
// are never visible to another user's session.
type Hub struct {
	mu       sync.Mutex
	sessions []*session
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers a listener for userID's events. The returned cancel
// must be called when the consumer goes away.
func (h *Hub) Subscribe(userID int) (<-chan Event, func()) {
	s := &session{userID: userID, ch: make(chan Event, 16)}
	h.mu.Lock()
	h.sessions = append(h.sessions, s)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		idx := slices.Index(h.sessions, s)
		if idx != -1 {
			h.sessions = slices.Delete(h.sessions, idx, idx+1)
		}
		h.mu.Unlock()
	}
	return s.ch, cancel
}

// Publish delivers ev to every session owned by the task's user. A session
// whose buffer is full is skipped rather than blocking the request.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		if s.userID != ev.Task.UserID {
			continue
		}
		select {
		case s.ch <- ev:
		default:
		}
	}
}
