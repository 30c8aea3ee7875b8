package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID             uuid.UUID `json:"id"`
	SenderUsername string    `json:"sender_username,omitempty"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"is_read"`
	Target         string    `json:"target"`
	CreatedAt      time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Page          int                    `json:"page"`
	TotalPages    int                    `json:"total_pages"`
	UnreadCount   int64                  `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
