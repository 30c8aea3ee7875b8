package chat

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// RoomKey names the room for a conversation pair. The usernames are sorted so
// both participants derive the same key.
func RoomKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return "chat_" + userA + "_" + userB
}

// subscriberBuffer is the per-subscriber queue depth. A subscriber that falls
// this far behind starts losing events; the poll endpoint remains the source
// of truth.
const subscriberBuffer = 16

// Subscription is one attached listener on a room. Events arrive on C as
// marshaled JSON frames.
type Subscription struct {
	C    chan []byte
	room string
}

// Hub fans events out to room subscribers. Broadcast never blocks: slow
// subscribers drop events rather than stalling the write path.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Subscription]struct{})}
}

// Join attaches a new subscriber to the room.
func (h *Hub) Join(room string) *Subscription {
	sub := &Subscription{
		C:    make(chan []byte, subscriberBuffer),
		room: room,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.rooms[room]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.rooms[room] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

// Leave detaches the subscriber and closes its channel. Safe to call once the
// connection is gone.
func (h *Hub) Leave(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.rooms[sub.room]
	if !ok {
		return
	}
	if _, member := subs[sub]; !member {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.rooms, sub.room)
	}
	close(sub.C)
}

// Broadcast marshals payload and offers it to every subscriber of the room.
// Delivery is best-effort; a full subscriber queue drops the event.
func (h *Hub) Broadcast(room string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal chat event", "room", room, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.rooms[room] {
		select {
		case sub.C <- data:
		default:
		}
	}
}

// SubscriberCount reports how many listeners a room currently has.
func (h *Hub) SubscriberCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
