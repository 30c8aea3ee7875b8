package dto

import (
	"time"

	"github.com/brainlink-app/brainlink-backend/internal/models"
	"github.com/google/uuid"
)

// MessageResponse is the wire shape the chat client polls for. FileURL and
// friends are omitted for text-only messages; the kind flags always appear so
// the client can branch without null checks.
type MessageResponse struct {
	ID             uuid.UUID `json:"id"`
	SenderUsername string    `json:"sender_username"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	FileURL        string    `json:"file_url,omitempty"`
	FileName       string    `json:"file_name,omitempty"`
	FileType       string    `json:"file_type,omitempty"`
	IsImage        bool      `json:"is_image"`
	IsVideo        bool      `json:"is_video"`
	IsAudio        bool      `json:"is_audio"`
	IsDocument     bool      `json:"is_document"`
}

// NewMessageResponse flattens a message (with Sender preloaded) to its wire
// shape, deriving the file-kind flags from the stored MIME type.
func NewMessageResponse(m *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if m.Sender != nil {
		resp.SenderUsername = m.Sender.Username
	}
	if m.HasFile() {
		kind := m.Kind()
		resp.FileURL = m.FilePath
		resp.FileName = m.FileName
		resp.FileType = m.FileType
		resp.IsImage = kind.IsImage
		resp.IsVideo = kind.IsVideo
		resp.IsAudio = kind.IsAudio
		resp.IsDocument = kind.IsDocument
	}
	return resp
}

type ConversationResponse struct {
	Peer        PeerResponse    `json:"peer"`
	LastMessage MessageResponse `json:"last_message"`
	UnreadCount int64           `json:"unread_count"`
}

// ChatEvent is the payload broadcast on the optional push channel.
type ChatEvent struct {
	Type    string          `json:"type"`
	Message MessageResponse `json:"message"`
}
