package chat

import (
	"encoding/json"
	"testing"
)

func TestRoomKeyIsOrderIndependent(t *testing.T) {
	if got := RoomKey("bob", "alice"); got != "chat_alice_bob" {
		t.Errorf("RoomKey(bob, alice) = %q, want chat_alice_bob", got)
	}
	if RoomKey("alice", "bob") != RoomKey("bob", "alice") {
		t.Error("RoomKey must be the same for both participants")
	}
}

func TestBroadcastDeliversToRoomOnly(t *testing.T) {
	hub := NewHub()
	sub := hub.Join("chat_alice_bob")
	defer hub.Leave(sub)
	other := hub.Join("chat_alice_carol")
	defer hub.Leave(other)

	hub.Broadcast("chat_alice_bob", map[string]string{"type": "chat_message"})

	select {
	case data := <-sub.C:
		var event map[string]string
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("frame is not JSON: %v", err)
		}
		if event["type"] != "chat_message" {
			t.Errorf("event = %v", event)
		}
	default:
		t.Fatal("subscriber received nothing")
	}

	select {
	case <-other.C:
		t.Error("event leaked into another room")
	default:
	}
}

func TestBroadcastDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub()
	sub := hub.Join("room")
	defer hub.Leave(sub)

	// One past the buffer; the overflow event must be dropped, not block.
	for i := 0; i < subscriberBuffer+1; i++ {
		hub.Broadcast("room", i)
	}

	if got := len(sub.C); got != subscriberBuffer {
		t.Errorf("queued events = %d, want %d", got, subscriberBuffer)
	}
}

func TestLeaveClosesChannelAndEmptiesRoom(t *testing.T) {
	hub := NewHub()
	sub := hub.Join("room")

	if got := hub.SubscriberCount("room"); got != 1 {
		t.Fatalf("subscriber count = %d, want 1", got)
	}

	hub.Leave(sub)

	if _, open := <-sub.C; open {
		t.Error("channel still open after Leave")
	}
	if got := hub.SubscriberCount("room"); got != 0 {
		t.Errorf("subscriber count after Leave = %d, want 0", got)
	}

	// Broadcasting into the now-empty room is harmless.
	hub.Broadcast("room", "late")
}
