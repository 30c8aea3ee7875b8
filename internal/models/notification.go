package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types emitted by the workflow engines.
const (
	NotifConnectionRequest  = "connection_request"
	NotifConnectionAccepted = "connection_accepted"
	NotifConnectionRejected = "connection_rejected"
	NotifConnectionRemoved  = "connection_removed"
	NotifMessage            = "message"
	NotifPostLike           = "post_like"
	NotifPostComment        = "post_comment"
)

// Kinds a notification's related reference can point at. RelatedKind plus
// RelatedID form a tagged reference; RelatedNone means the notification is
// purely informational.
const (
	RelatedNone              = ""
	RelatedConnectionRequest = "connection_request"
	RelatedMessage           = "message"
	RelatedPost              = "post"
)

// Notification is an append-only event record addressed to a user. Only the
// read flag ever changes after creation.
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient" json:"recipient_id"`
	SenderID    *uuid.UUID `gorm:"type:uuid" json:"sender_id,omitempty"`
	Type        string     `gorm:"size:50;not null;default:'general'" json:"type"`
	Message     string     `gorm:"size:255;not null" json:"message"`
	IsRead      bool       `gorm:"not null;default:false;index:idx_notifications_recipient" json:"is_read"`
	RelatedKind string     `gorm:"size:30" json:"related_kind,omitempty"`
	RelatedID   *uuid.UUID `gorm:"type:uuid" json:"related_id,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`

	Recipient *User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	Sender    *User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
}
