package services

import (
	"errors"
	"testing"

	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/google/uuid"
)

func newProfileFixture(t *testing.T) (*ProfileService, *ConnectionService, *testFixture) {
	t.Helper()
	db := newTestDB(t)
	connections := NewConnectionService(db, NewNotificationService(db))
	svc := NewProfileService(db, connections)
	return svc, connections, &testFixture{
		db:    db,
		alice: createUser(t, db, "alice"),
		bob:   createUser(t, db, "bob"),
	}
}

func TestProfileViewRelationshipFlags(t *testing.T) {
	svc, connections, fx := newProfileFixture(t)

	view, err := svc.View(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.IsConnected || view.ConnectionRequestSent {
		t.Errorf("fresh view flags = connected:%v sent:%v, want both false", view.IsConnected, view.ConnectionRequestSent)
	}

	request, err := connections.SendRequest(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}
	view, err = svc.View(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.IsConnected || !view.ConnectionRequestSent {
		t.Errorf("pending view flags = connected:%v sent:%v, want sent only", view.IsConnected, view.ConnectionRequestSent)
	}

	if _, err := connections.AcceptRequest(request.ID, fx.bob.ID); err != nil {
		t.Fatalf("AcceptRequest failed: %v", err)
	}
	view, err = svc.View(fx.alice.ID, "bob")
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if !view.IsConnected {
		t.Error("view after accept should report connected")
	}
}

func TestProfileViewUnknownUser(t *testing.T) {
	svc, _, fx := newProfileFixture(t)

	if _, err := svc.View(fx.alice.ID, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestProfileUpdatePartial(t *testing.T) {
	svc, _, fx := newProfileFixture(t)

	bio := "Distributed systems enthusiast"
	linkedin := "https://linkedin.com/in/alice"
	skills := []string{"go", "postgres"}
	err := svc.Update(fx.alice.ID, &dto.UpdateProfileRequest{
		Bio:      &bio,
		LinkedIn: &linkedin,
		Skills:   skills,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	view, err := svc.View(fx.bob.ID, "alice")
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.Bio != bio || view.LinkedIn != linkedin {
		t.Errorf("view = bio:%q linkedin:%q", view.Bio, view.LinkedIn)
	}
	if len(view.Skills) != 2 || view.Skills[0] != "go" {
		t.Errorf("skills = %v", view.Skills)
	}

	// Fields left nil stay untouched.
	institution := "MIT"
	if err := svc.Update(fx.alice.ID, &dto.UpdateProfileRequest{Institution: &institution}); err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	view, err = svc.View(fx.bob.ID, "alice")
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.Bio != bio || view.Institution != institution {
		t.Errorf("after partial update: bio:%q institution:%q", view.Bio, view.Institution)
	}
}

func TestProfileUpdateUnknownUser(t *testing.T) {
	svc, _, _ := newProfileFixture(t)

	bio := "ghost"
	if err := svc.Update(uuid.New(), &dto.UpdateProfileRequest{Bio: &bio}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}
