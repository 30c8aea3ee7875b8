package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users. Content may be empty when a
// file is attached; the service refuses messages where both are absent.
type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_pair" json:"sender_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_pair" json:"recipient_id"`
	Content     string    `gorm:"type:text" json:"content"`
	FilePath    string    `gorm:"type:text" json:"-"`
	FileName    string    `gorm:"size:255" json:"file_name,omitempty"`
	FileType    string    `gorm:"size:100" json:"file_type,omitempty"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`

	Sender    *User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Recipient *User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
}

// HasFile reports whether the message carries an attachment.
func (m *Message) HasFile() bool {
	return m.FilePath != ""
}
