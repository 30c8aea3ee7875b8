package models

import (
	"time"

	"github.com/google/uuid"
)

// Post content kinds.
const (
	PostArticle  = "article"
	PostQuestion = "question"
	PostSolution = "solution"
	PostDebate   = "debate"
	PostProject  = "project"
)

var validPostKinds = map[string]bool{
	PostArticle:  true,
	PostQuestion: true,
	PostSolution: true,
	PostDebate:   true,
	PostProject:  true,
}

// ValidPostKind reports whether kind is one of the accepted content kinds.
func ValidPostKind(kind string) bool {
	return validPostKinds[kind]
}

type Post struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	ContentKind string    `gorm:"size:20;not null;default:'article'" json:"content_kind"`
	IsFeatured  bool      `gorm:"default:false;index" json:"is_featured"`
	IsApproved  bool      `gorm:"default:false" json:"is_approved"`
	LikeCount   int       `gorm:"default:0" json:"like_count"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// Like records one user liking one post; the unique pair makes likes
// idempotent at the storage level.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair" json:"user_id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
