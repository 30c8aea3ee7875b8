package models

import (
	"time"

	"github.com/google/uuid"
)

// ConnectionRequest statuses. A request starts pending and resolves exactly
// once; accepted and rejected are terminal.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// ConnectionRequest is an offer from Sender to connect with Receiver.
// Resolved requests stay as history, so the pair index is not unique; the
// workflow refuses a new request while one is pending in either direction.
type ConnectionRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_connection_requests_pair" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index:idx_connection_requests_pair" json:"receiver_id"`
	Status     string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Sender   *User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"receiver,omitempty"`
}

// Connection is an established, symmetric edge between two profiles. The pair
// is stored in canonical order (UserLowID < UserHighID by UUID string), so a
// single indexed lookup answers "is connected" for either direction.
type Connection struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserLowID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair" json:"user_low_id"`
	UserHighID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair" json:"user_high_id"`
	Accepted   bool      `gorm:"not null;default:true" json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`

	UserLow  *User `gorm:"foreignKey:UserLowID;constraint:OnDelete:CASCADE" json:"-"`
	UserHigh *User `gorm:"foreignKey:UserHighID;constraint:OnDelete:CASCADE" json:"-"`
}

// OrderPair returns the two ids in canonical storage order.
func OrderPair(a, b uuid.UUID) (low, high uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}
