package services

import (
	"errors"
	"fmt"

	"github.com/brainlink-app/brainlink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationPageSize is the fixed page size for the notification list.
const NotificationPageSize = 15

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrForbidden            = errors.New("not allowed")
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Emit appends one notification. It runs on the caller's transaction so the
// notification commits or rolls back together with the event that caused it.
func (s *NotificationService) Emit(tx *gorm.DB, recipientID uuid.UUID, senderID *uuid.UUID, notifType, message, relatedKind string, relatedID *uuid.UUID) error {
	n := models.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notifType,
		Message:     message,
		RelatedKind: relatedKind,
		RelatedID:   relatedID,
	}
	if err := tx.Create(&n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListAll returns one page of the user's notifications, newest first, with
// senders preloaded for target resolution.
func (s *NotificationService) ListAll(userID uuid.UUID, page int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.db.Model(&models.Notification{}).Where("recipient_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []models.Notification
	err := s.db.Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(NotificationPageSize).
		Offset((page - 1) * NotificationPageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// ListUnread returns all of the user's unread notifications, newest first.
func (s *NotificationService) ListUnread(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Preload("Sender").
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unread notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flips a single notification's read flag. Only the recipient may do
// this; marking an already-read notification is a no-op.
func (s *NotificationService) MarkRead(notificationID, userID uuid.UUID) error {
	var n models.Notification
	if err := s.db.First(&n, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to load notification: %w", err)
	}
	if n.RecipientID != userID {
		return ErrForbidden
	}
	if n.IsRead {
		return nil
	}
	if err := s.db.Model(&n).Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead bulk-flips every unread notification of the user and returns how
// many were flipped. The returned count is the unread count as it stood before
// the flip, so callers can report what this call consumed.
func (s *NotificationService) MarkAllRead(userID uuid.UUID) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// TargetPath resolves a notification to the page it should navigate to,
// directed by its type. Unknown types and missing references land on home.
func (s *NotificationService) TargetPath(n *models.Notification) string {
	switch n.Type {
	case models.NotifConnectionRequest, models.NotifConnectionAccepted:
		if n.Sender != nil {
			return "/profiles/" + n.Sender.Username
		}
	case models.NotifMessage:
		if n.Sender != nil {
			return "/chat/" + n.Sender.Username
		}
	case models.NotifPostLike, models.NotifPostComment:
		if n.RelatedKind == models.RelatedPost && n.RelatedID != nil {
			return "/posts/" + n.RelatedID.String()
		}
	}
	return "/home"
}
