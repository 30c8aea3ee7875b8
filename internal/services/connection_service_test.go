package services

import (
	"errors"
	"testing"

	"github.com/brainlink-app/brainlink-backend/internal/models"
)

func newConnectionFixture(t *testing.T) (*ConnectionService, *NotificationService, *testFixture) {
	t.Helper()
	db := newTestDB(t)
	notifs := NewNotificationService(db)
	svc := NewConnectionService(db, notifs)
	return svc, notifs, &testFixture{
		db:    db,
		alice: createUser(t, db, "alice"),
		bob:   createUser(t, db, "bob"),
	}
}

func TestSendRequestCreatesPendingAndNotifies(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	request, err := svc.SendRequest(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}
	if request.Status != models.RequestPending {
		t.Errorf("status = %q, want %q", request.Status, models.RequestPending)
	}
	if request.SenderID != fx.alice.ID || request.ReceiverID != fx.bob.ID {
		t.Errorf("request endpoints wrong: sender=%s receiver=%s", request.SenderID, request.ReceiverID)
	}

	if got := unreadCount(t, fx.db, fx.bob.ID); got != 1 {
		t.Errorf("receiver unread count = %d, want 1", got)
	}
	if got := unreadCount(t, fx.db, fx.alice.ID); got != 0 {
		t.Errorf("sender unread count = %d, want 0", got)
	}
}

func TestSendRequestToSelf(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	if _, err := svc.SendRequest(fx.alice.ID, "alice"); !errors.Is(err, ErrSelfConnection) {
		t.Errorf("got %v, want ErrSelfConnection", err)
	}
}

func TestSendRequestUnknownReceiver(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	if _, err := svc.SendRequest(fx.alice.ID, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestSendRequestDuplicatePending(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	if _, err := svc.SendRequest(fx.alice.ID, "bob"); err != nil {
		t.Fatalf("first SendRequest failed: %v", err)
	}

	// Same direction.
	if _, err := svc.SendRequest(fx.alice.ID, "bob"); !errors.Is(err, ErrDuplicatePending) {
		t.Errorf("repeat got %v, want ErrDuplicatePending", err)
	}
	// Opposite direction while the first is still pending.
	if _, err := svc.SendRequest(fx.bob.ID, "alice"); !errors.Is(err, ErrDuplicatePending) {
		t.Errorf("reverse got %v, want ErrDuplicatePending", err)
	}

	var count int64
	fx.db.Model(&models.ConnectionRequest{}).Count(&count)
	if count != 1 {
		t.Errorf("request rows = %d, want 1", count)
	}
}

func TestAcceptRequestCreatesSymmetricConnection(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	request, err := svc.SendRequest(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}

	if _, err := svc.AcceptRequest(request.ID, fx.bob.ID); err != nil {
		t.Fatalf("AcceptRequest failed: %v", err)
	}

	connected, err := svc.IsConnected(fx.alice.ID, fx.bob.ID)
	if err != nil || !connected {
		t.Errorf("IsConnected(alice, bob) = %v, %v; want true", connected, err)
	}
	connected, err = svc.IsConnected(fx.bob.ID, fx.alice.ID)
	if err != nil || !connected {
		t.Errorf("IsConnected(bob, alice) = %v, %v; want true", connected, err)
	}

	// Original sender is told about the acceptance.
	var notifs []models.Notification
	fx.db.Where("recipient_id = ? AND type = ?", fx.alice.ID, models.NotifConnectionAccepted).Find(&notifs)
	if len(notifs) != 1 {
		t.Errorf("acceptance notifications = %d, want 1", len(notifs))
	}
}

func TestAcceptRequestOnlyReceiverMay(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	request, err := svc.SendRequest(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}

	// The sender cannot accept their own request.
	if _, err := svc.AcceptRequest(request.ID, fx.alice.ID); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("got %v, want ErrRequestNotFound", err)
	}
}

func TestResolvedRequestIsTerminal(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	request, err := svc.SendRequest(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}
	if _, err := svc.AcceptRequest(request.ID, fx.bob.ID); err != nil {
		t.Fatalf("AcceptRequest failed: %v", err)
	}

	if _, err := svc.AcceptRequest(request.ID, fx.bob.ID); !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("re-accept got %v, want ErrAlreadyResolved", err)
	}
	if err := svc.RejectRequest(request.ID, fx.bob.ID); !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("reject after accept got %v, want ErrAlreadyResolved", err)
	}
}

func TestRejectRequestIsSilent(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	request, err := svc.SendRequest(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}

	before := unreadCount(t, fx.db, fx.alice.ID)
	if err := svc.RejectRequest(request.ID, fx.bob.ID); err != nil {
		t.Fatalf("RejectRequest failed: %v", err)
	}
	if after := unreadCount(t, fx.db, fx.alice.ID); after != before {
		t.Errorf("sender unread count changed %d -> %d; rejection must not notify", before, after)
	}

	connected, err := svc.IsConnected(fx.alice.ID, fx.bob.ID)
	if err != nil || connected {
		t.Errorf("IsConnected after reject = %v, %v; want false", connected, err)
	}

	// A fresh request is allowed once the old one is resolved.
	if _, err := svc.SendRequest(fx.alice.ID, "bob"); err != nil {
		t.Errorf("new request after rejection failed: %v", err)
	}
}

func TestRemoveConnection(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	request, err := svc.SendRequest(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}
	if _, err := svc.AcceptRequest(request.ID, fx.bob.ID); err != nil {
		t.Fatalf("AcceptRequest failed: %v", err)
	}

	// Either side may remove; here bob removes an edge alice initiated.
	if err := svc.RemoveConnection(fx.bob.ID, "alice"); err != nil {
		t.Fatalf("RemoveConnection failed: %v", err)
	}

	connected, err := svc.IsConnected(fx.alice.ID, fx.bob.ID)
	if err != nil || connected {
		t.Errorf("IsConnected after removal = %v, %v; want false", connected, err)
	}

	var notifs []models.Notification
	fx.db.Where("recipient_id = ? AND type = ?", fx.alice.ID, models.NotifConnectionRemoved).Find(&notifs)
	if len(notifs) != 1 {
		t.Errorf("removal notifications = %d, want 1", len(notifs))
	}

	if err := svc.RemoveConnection(fx.bob.ID, "alice"); !errors.Is(err, ErrConnectionNotFound) {
		t.Errorf("second removal got %v, want ErrConnectionNotFound", err)
	}
}

func TestSendRequestWhileConnected(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)

	request, err := svc.SendRequest(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}
	if _, err := svc.AcceptRequest(request.ID, fx.bob.ID); err != nil {
		t.Fatalf("AcceptRequest failed: %v", err)
	}

	if _, err := svc.SendRequest(fx.bob.ID, "alice"); !errors.Is(err, ErrAlreadyConnected) {
		t.Errorf("got %v, want ErrAlreadyConnected", err)
	}
}

func TestListConnectionsAndRequests(t *testing.T) {
	svc, _, fx := newConnectionFixture(t)
	carol := createUser(t, fx.db, "carol")

	// alice <-> bob established, carol -> alice pending.
	request, err := svc.SendRequest(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}
	if _, err := svc.AcceptRequest(request.ID, fx.bob.ID); err != nil {
		t.Fatalf("AcceptRequest failed: %v", err)
	}
	if _, err := svc.SendRequest(carol.ID, "alice"); err != nil {
		t.Fatalf("SendRequest from carol failed: %v", err)
	}

	connections, err := svc.ListConnections(fx.alice.ID)
	if err != nil {
		t.Fatalf("ListConnections failed: %v", err)
	}
	if len(connections) != 1 || connections[0].Peer.Username != "bob" {
		t.Errorf("connections = %+v, want single peer bob", connections)
	}

	requests, err := svc.ListIncomingRequests(fx.alice.ID)
	if err != nil {
		t.Fatalf("ListIncomingRequests failed: %v", err)
	}
	if len(requests) != 1 || requests[0].Sender.Username != "carol" {
		t.Errorf("incoming requests = %+v, want single sender carol", requests)
	}

	// The pending carol->alice request is invisible to carol's incoming list.
	requests, err = svc.ListIncomingRequests(carol.ID)
	if err != nil {
		t.Fatalf("ListIncomingRequests for carol failed: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("carol incoming requests = %d, want 0", len(requests))
	}
}
