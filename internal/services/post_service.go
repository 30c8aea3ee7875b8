package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brainlink-app/brainlink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrInvalidPost     = errors.New("post needs a title and content")
	ErrInvalidPostKind = errors.New("invalid content kind")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrLikeNotFound    = errors.New("like not found")
	ErrEmptyComment    = errors.New("comment must not be empty")
)

type PostService struct {
	db     *gorm.DB
	notifs *NotificationService
}

func NewPostService(db *gorm.DB, notifs *NotificationService) *PostService {
	return &PostService{db: db, notifs: notifs}
}

func (s *PostService) Create(authorID uuid.UUID, title, content, contentKind string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrInvalidPost
	}
	if contentKind == "" {
		contentKind = models.PostArticle
	}
	if !models.ValidPostKind(contentKind) {
		return nil, ErrInvalidPostKind
	}

	post := models.Post{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Title:       title,
		Content:     content,
		ContentKind: contentKind,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

func (s *PostService) Get(postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	return &post, nil
}

func (s *PostService) List(page, limit int) ([]models.Post, int64, error) {
	var total int64
	if err := s.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []models.Post
	err := s.db.Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// Like records a like and notifies the author, unless the liker is the author.
// The unique (user, post) pair makes a repeat like report ErrAlreadyLiked.
func (s *PostService) Like(userID, postID uuid.UUID) error {
	post, err := s.Get(postID)
	if err != nil {
		return err
	}

	var liker models.User
	if err := s.db.First(&liker, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		like := models.Like{ID: uuid.New(), UserID: userID, PostID: postID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to bump like count: %w", err)
		}
		if post.AuthorID == userID {
			return nil
		}
		return s.notifs.Emit(tx, post.AuthorID, &liker.ID,
			models.NotifPostLike,
			fmt.Sprintf("%s liked your post", liker.Username),
			models.RelatedPost, &postID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (s *PostService) Unlike(userID, postID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete like: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrLikeNotFound
		}
		err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
		if err != nil {
			return fmt.Errorf("failed to drop like count: %w", err)
		}
		return nil
	})
}

// Comment appends a comment and notifies the author, unless commenting on
// one's own post.
func (s *PostService) Comment(userID, postID uuid.UUID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	post, err := s.Get(postID)
	if err != nil {
		return nil, err
	}

	var commenter models.User
	if err := s.db.First(&commenter, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	comment := models.Comment{
		ID:      uuid.New(),
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		if post.AuthorID == userID {
			return nil
		}
		return s.notifs.Emit(tx, post.AuthorID, &commenter.ID,
			models.NotifPostComment,
			fmt.Sprintf("%s commented on your post", commenter.Username),
			models.RelatedPost, &postID)
	})
	if err != nil {
		return nil, err
	}
	comment.User = &commenter
	return &comment, nil
}

func (s *PostService) ListComments(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
