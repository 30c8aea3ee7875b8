package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brainlink-app/brainlink-backend/internal/chat"
	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/brainlink-app/brainlink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyMessage      = errors.New("message must have content or a file")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrMessageNotFound   = errors.New("message not found")
)

// FileUpload describes a stored attachment. URL is the public path the file
// was saved under; MIME is the content type the client declared on upload.
type FileUpload struct {
	URL  string
	Name string
	MIME string
}

// Broadcaster publishes to a named room. Implementations must not block the
// caller; delivery is best-effort.
type Broadcaster interface {
	Broadcast(room string, payload interface{})
}

// MessageService stores and retrieves pairwise messages. Persistence is
// authoritative; the optional broadcaster only accelerates delivery for
// clients holding a socket open.
type MessageService struct {
	db          *gorm.DB
	notifs      *NotificationService
	broadcaster Broadcaster
}

func NewMessageService(db *gorm.DB, notifs *NotificationService, broadcaster Broadcaster) *MessageService {
	return &MessageService{db: db, notifs: notifs, broadcaster: broadcaster}
}

// SendMessage persists a message to the named recipient and emits a message
// notification in the same transaction. The push broadcast happens after
// commit and never blocks or fails the write.
func (s *MessageService) SendMessage(senderID uuid.UUID, recipientUsername, content string, file *FileUpload) (*dto.MessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" && file == nil {
		return nil, ErrEmptyMessage
	}

	var sender models.User
	if err := s.db.First(&sender, "id = ?", senderID).Error; err != nil {
		return nil, fmt.Errorf("failed to load sender: %w", err)
	}

	var recipient models.User
	if err := s.db.Where("username = ?", recipientUsername).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	message := models.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Content:     content,
		Timestamp:   time.Now().UTC(),
	}
	if file != nil {
		message.FilePath = file.URL
		message.FileName = file.Name
		message.FileType = file.MIME
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		return s.notifs.Emit(tx, recipient.ID, &sender.ID,
			models.NotifMessage,
			fmt.Sprintf("New message from %s", sender.Username),
			models.RelatedMessage, &message.ID)
	})
	if err != nil {
		return nil, err
	}

	message.Sender = &sender
	resp := dto.NewMessageResponse(&message)

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(
			chat.RoomKey(sender.Username, recipient.Username),
			dto.ChatEvent{Type: "chat_message", Message: resp},
		)
	}
	return &resp, nil
}

// FetchMessages returns the conversation between the user and the named peer,
// timestamp ascending. A since cursor is inclusive (timestamp >= since) so
// polling never misses a message that shares the boundary timestamp; clients
// de-duplicate by id.
func (s *MessageService) FetchMessages(userID uuid.UUID, peerUsername string, since *time.Time) ([]dto.MessageResponse, error) {
	var peer models.User
	if err := s.db.Where("username = ?", peerUsername).First(&peer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to load peer: %w", err)
	}

	query := s.db.Preload("Sender").
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peer.ID, peer.ID, userID)
	if since != nil {
		query = query.Where("timestamp >= ?", *since)
	}

	var messages []models.Message
	if err := query.Order("timestamp ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, dto.NewMessageResponse(&messages[i]))
	}
	return responses, nil
}

// MarkRead flips a message's read flag and cascades to the notification that
// announced it. Only the recipient may mark a message read.
func (s *MessageService) MarkRead(messageID, userID uuid.UUID) error {
	var message models.Message
	if err := s.db.First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to load message: %w", err)
	}
	if message.RecipientID != userID {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if !message.IsRead {
			if err := tx.Model(&message).Update("is_read", true).Error; err != nil {
				return fmt.Errorf("failed to mark message read: %w", err)
			}
		}
		err := tx.Model(&models.Notification{}).
			Where("recipient_id = ? AND related_kind = ? AND related_id = ?",
				userID, models.RelatedMessage, messageID).
			Update("is_read", true).Error
		if err != nil {
			return fmt.Errorf("failed to mark related notification read: %w", err)
		}
		return nil
	})
}

// Delete hard-deletes a message. Only the recipient may delete.
func (s *MessageService) Delete(messageID, userID uuid.UUID) error {
	var message models.Message
	if err := s.db.First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to load message: %w", err)
	}
	if message.RecipientID != userID {
		return ErrForbidden
	}
	if err := s.db.Delete(&message).Error; err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// Conversations folds the user's message history into one entry per peer:
// the latest message plus how many of the peer's messages are still unread.
func (s *MessageService) Conversations(userID uuid.UUID) ([]dto.ConversationResponse, error) {
	var messages []models.Message
	err := s.db.Preload("Sender").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("timestamp DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	type convo struct {
		last   *models.Message
		unread int64
	}
	order := make([]uuid.UUID, 0)
	byPeer := make(map[uuid.UUID]*convo)
	for i := range messages {
		m := &messages[i]
		peerID := m.SenderID
		if peerID == userID {
			peerID = m.RecipientID
		}
		c, ok := byPeer[peerID]
		if !ok {
			c = &convo{last: m}
			byPeer[peerID] = c
			order = append(order, peerID)
		}
		if m.RecipientID == userID && !m.IsRead {
			c.unread++
		}
	}

	peers := make(map[uuid.UUID]models.User, len(order))
	if len(order) > 0 {
		var users []models.User
		if err := s.db.Preload("Profile").Where("id IN ?", order).Find(&users).Error; err != nil {
			return nil, fmt.Errorf("failed to load peers: %w", err)
		}
		for _, u := range users {
			peers[u.ID] = u
		}
	}

	responses := make([]dto.ConversationResponse, 0, len(order))
	for _, peerID := range order {
		peer, ok := peers[peerID]
		if !ok {
			continue
		}
		c := byPeer[peerID]
		responses = append(responses, dto.ConversationResponse{
			Peer:        peerResponse(&peer),
			LastMessage: dto.NewMessageResponse(c.last),
			UnreadCount: c.unread,
		})
	}
	return responses, nil
}
