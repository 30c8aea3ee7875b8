package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentKind string `json:"content_kind"`
}

type PostResponse struct {
	ID             uuid.UUID `json:"id"`
	AuthorUsername string    `json:"author_username"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ContentKind    string    `json:"content_kind"`
	LikeCount      int       `json:"like_count"`
	IsFeatured     bool      `json:"is_featured"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type AdminStatsResponse struct {
	TotalUsers       int64 `json:"total_users"`
	NewUsers7d       int64 `json:"new_users_7d"`
	TotalPosts       int64 `json:"total_posts"`
	TotalConnections int64 `json:"total_connections"`
	TotalMessages    int64 `json:"total_messages"`
}
