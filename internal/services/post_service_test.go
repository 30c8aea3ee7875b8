package services

import (
	"errors"
	"testing"

	"github.com/brainlink-app/brainlink-backend/internal/models"
)

func newPostFixture(t *testing.T) (*PostService, *testFixture) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPostService(db, NewNotificationService(db))
	return svc, &testFixture{
		db:    db,
		alice: createUser(t, db, "alice"),
		bob:   createUser(t, db, "bob"),
	}
}

func TestCreatePostValidation(t *testing.T) {
	svc, fx := newPostFixture(t)

	if _, err := svc.Create(fx.alice.ID, "", "body", models.PostArticle); !errors.Is(err, ErrInvalidPost) {
		t.Errorf("empty title got %v, want ErrInvalidPost", err)
	}
	if _, err := svc.Create(fx.alice.ID, "title", "body", "rant"); !errors.Is(err, ErrInvalidPostKind) {
		t.Errorf("bad kind got %v, want ErrInvalidPostKind", err)
	}

	post, err := svc.Create(fx.alice.ID, "title", "body", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.ContentKind != models.PostArticle {
		t.Errorf("default kind = %q, want article", post.ContentKind)
	}
}

func TestLikeBumpsCountAndNotifiesAuthor(t *testing.T) {
	svc, fx := newPostFixture(t)

	post, err := svc.Create(fx.alice.ID, "title", "body", models.PostQuestion)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Like(fx.bob.ID, post.ID); err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if err := svc.Like(fx.bob.ID, post.ID); !errors.Is(err, ErrAlreadyLiked) {
		t.Errorf("repeat like got %v, want ErrAlreadyLiked", err)
	}

	reloaded, err := svc.Get(post.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if reloaded.LikeCount != 1 {
		t.Errorf("like count = %d, want 1", reloaded.LikeCount)
	}

	var notif models.Notification
	err = fx.db.Where("recipient_id = ? AND type = ?", fx.alice.ID, models.NotifPostLike).First(&notif).Error
	if err != nil {
		t.Fatalf("like notification missing: %v", err)
	}
	if notif.RelatedKind != models.RelatedPost || notif.RelatedID == nil || *notif.RelatedID != post.ID {
		t.Errorf("notification reference = %q/%v", notif.RelatedKind, notif.RelatedID)
	}
}

func TestLikeOwnPostDoesNotNotify(t *testing.T) {
	svc, fx := newPostFixture(t)

	post, err := svc.Create(fx.alice.ID, "title", "body", models.PostArticle)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Like(fx.alice.ID, post.ID); err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if got := unreadCount(t, fx.db, fx.alice.ID); got != 0 {
		t.Errorf("self-like produced %d notifications, want 0", got)
	}
}

func TestUnlike(t *testing.T) {
	svc, fx := newPostFixture(t)

	post, err := svc.Create(fx.alice.ID, "title", "body", models.PostArticle)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Unlike(fx.bob.ID, post.ID); !errors.Is(err, ErrLikeNotFound) {
		t.Errorf("unlike without like got %v, want ErrLikeNotFound", err)
	}

	if err := svc.Like(fx.bob.ID, post.ID); err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if err := svc.Unlike(fx.bob.ID, post.ID); err != nil {
		t.Fatalf("Unlike failed: %v", err)
	}

	reloaded, err := svc.Get(post.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if reloaded.LikeCount != 0 {
		t.Errorf("like count = %d, want 0", reloaded.LikeCount)
	}
}

func TestCommentNotifiesAuthor(t *testing.T) {
	svc, fx := newPostFixture(t)

	post, err := svc.Create(fx.alice.ID, "title", "body", models.PostArticle)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Comment(fx.bob.ID, post.ID, "   "); !errors.Is(err, ErrEmptyComment) {
		t.Errorf("blank comment got %v, want ErrEmptyComment", err)
	}

	comment, err := svc.Comment(fx.bob.ID, post.ID, "nice one")
	if err != nil {
		t.Fatalf("Comment failed: %v", err)
	}
	if comment.Content != "nice one" {
		t.Errorf("content = %q", comment.Content)
	}

	var notif models.Notification
	err = fx.db.Where("recipient_id = ? AND type = ?", fx.alice.ID, models.NotifPostComment).First(&notif).Error
	if err != nil {
		t.Fatalf("comment notification missing: %v", err)
	}

	comments, err := svc.ListComments(post.ID)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("comments = %d, want 1", len(comments))
	}
}

func TestListPostsPagination(t *testing.T) {
	svc, fx := newPostFixture(t)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(fx.alice.ID, "title", "body", models.PostArticle); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	posts, total, err := svc.List(1, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 || len(posts) != 3 {
		t.Errorf("page 1: total=%d len=%d, want 5/3", total, len(posts))
	}

	posts, _, err = svc.List(2, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("page 2 len = %d, want 2", len(posts))
	}
}
