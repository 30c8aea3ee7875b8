package services

import (
	"errors"
	"fmt"

	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/brainlink-app/brainlink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSelfConnection     = errors.New("you cannot connect with yourself")
	ErrAlreadyConnected   = errors.New("you are already connected")
	ErrDuplicatePending   = errors.New("a pending connection request already exists")
	ErrRequestNotFound    = errors.New("connection request not found")
	ErrAlreadyResolved    = errors.New("connection request already resolved")
	ErrConnectionNotFound = errors.New("connection not found")
)

// ConnectionService mediates connection requests and their resolution into
// durable edges. Rejections are silent; removals notify the other party.
type ConnectionService struct {
	db     *gorm.DB
	notifs *NotificationService
}

func NewConnectionService(db *gorm.DB, notifs *NotificationService) *ConnectionService {
	return &ConnectionService{db: db, notifs: notifs}
}

// SendRequest creates a pending connection request from sender to the named
// receiver and notifies the receiver. A second submission while the first is
// pending (in either direction) reports ErrDuplicatePending without creating
// a second row.
func (s *ConnectionService) SendRequest(senderID uuid.UUID, receiverUsername string) (*models.ConnectionRequest, error) {
	var sender models.User
	if err := s.db.First(&sender, "id = ?", senderID).Error; err != nil {
		return nil, fmt.Errorf("failed to load sender: %w", err)
	}

	var receiver models.User
	if err := s.db.Where("username = ?", receiverUsername).First(&receiver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load receiver: %w", err)
	}

	if receiver.ID == senderID {
		return nil, ErrSelfConnection
	}

	connected, err := s.IsConnected(senderID, receiver.ID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, ErrAlreadyConnected
	}

	var pending int64
	err = s.db.Model(&models.ConnectionRequest{}).
		Where("status = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			models.RequestPending, senderID, receiver.ID, receiver.ID, senderID).
		Count(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending > 0 {
		return nil, ErrDuplicatePending
	}

	request := models.ConnectionRequest{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     models.RequestPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		return s.notifs.Emit(tx, receiver.ID, &sender.ID,
			models.NotifConnectionRequest,
			fmt.Sprintf("%s wants to connect with you", sender.Username),
			models.RelatedConnectionRequest, &request.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create connection request: %w", err)
	}
	return &request, nil
}

// AcceptRequest resolves a pending request addressed to actingUser, creating
// the symmetric connection edge and notifying the original sender. The status
// transition is guarded by a conditional update so concurrent resolvers
// serialize: exactly one wins, the rest observe ErrAlreadyResolved.
func (s *ConnectionService) AcceptRequest(requestID, actingUserID uuid.UUID) (*models.Connection, error) {
	var connection *models.Connection

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ConnectionRequest{}).
			Where("id = ? AND receiver_id = ? AND status = ?", requestID, actingUserID, models.RequestPending).
			Update("status", models.RequestAccepted)
		if result.Error != nil {
			return fmt.Errorf("failed to update request status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return s.classifyResolveFailure(tx, requestID, actingUserID)
		}

		var request models.ConnectionRequest
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			return fmt.Errorf("failed to reload request: %w", err)
		}

		var accepter models.User
		if err := tx.First(&accepter, "id = ?", actingUserID).Error; err != nil {
			return fmt.Errorf("failed to load accepter: %w", err)
		}

		low, high := models.OrderPair(request.SenderID, request.ReceiverID)
		connection = &models.Connection{
			ID:         uuid.New(),
			UserLowID:  low,
			UserHighID: high,
			Accepted:   true,
		}
		if err := tx.Create(connection).Error; err != nil {
			return fmt.Errorf("failed to create connection: %w", err)
		}

		return s.notifs.Emit(tx, request.SenderID, &accepter.ID,
			models.NotifConnectionAccepted,
			fmt.Sprintf("%s accepted your connection request", accepter.Username),
			models.RelatedNone, nil)
	})
	if err != nil {
		return nil, err
	}
	return connection, nil
}

// RejectRequest resolves a pending request to rejected. No notification is
// emitted; the sender only ever learns about acceptances.
func (s *ConnectionService) RejectRequest(requestID, actingUserID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ConnectionRequest{}).
			Where("id = ? AND receiver_id = ? AND status = ?", requestID, actingUserID, models.RequestPending).
			Update("status", models.RequestRejected)
		if result.Error != nil {
			return fmt.Errorf("failed to update request status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return s.classifyResolveFailure(tx, requestID, actingUserID)
		}
		return nil
	})
}

// classifyResolveFailure distinguishes "no such request for this user" from
// "request exists but already left pending" after a guarded update matched
// zero rows.
func (s *ConnectionService) classifyResolveFailure(tx *gorm.DB, requestID, actingUserID uuid.UUID) error {
	var request models.ConnectionRequest
	err := tx.Where("id = ? AND receiver_id = ?", requestID, actingUserID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to load request: %w", err)
	}
	return ErrAlreadyResolved
}

// RemoveConnection deletes the edge between the acting user and the named
// peer, regardless of which side originally created it, and notifies the
// other party.
func (s *ConnectionService) RemoveConnection(userID uuid.UUID, otherUsername string) error {
	var actor models.User
	if err := s.db.First(&actor, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	var other models.User
	if err := s.db.Where("username = ?", otherUsername).First(&other).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	low, high := models.OrderPair(userID, other.ID)

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_low_id = ? AND user_high_id = ? AND accepted = ?", low, high, true).
			Delete(&models.Connection{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete connection: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrConnectionNotFound
		}
		return s.notifs.Emit(tx, other.ID, &actor.ID,
			models.NotifConnectionRemoved,
			fmt.Sprintf("%s removed the connection with you", actor.Username),
			models.RelatedNone, nil)
	})
}

// IsConnected reports whether an accepted edge exists between the two users.
// The canonical pair ordering means a single lookup answers both directions.
func (s *ConnectionService) IsConnected(userA, userB uuid.UUID) (bool, error) {
	low, high := models.OrderPair(userA, userB)
	var count int64
	err := s.db.Model(&models.Connection{}).
		Where("user_low_id = ? AND user_high_id = ? AND accepted = ?", low, high, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check connection: %w", err)
	}
	return count > 0, nil
}

// HasPendingRequest reports whether sender has a pending request addressed to
// receiver (directional; used by the profile view).
func (s *ConnectionService) HasPendingRequest(senderID, receiverID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.ConnectionRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.RequestPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}
	return count > 0, nil
}

// ListConnections returns the user's established connections with the peer's
// public summary.
func (s *ConnectionService) ListConnections(userID uuid.UUID) ([]dto.ConnectionResponse, error) {
	var connections []models.Connection
	err := s.db.Where("(user_low_id = ? OR user_high_id = ?) AND accepted = ?", userID, userID, true).
		Order("created_at DESC").
		Find(&connections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	peerIDs := make([]uuid.UUID, 0, len(connections))
	for _, c := range connections {
		if c.UserLowID == userID {
			peerIDs = append(peerIDs, c.UserHighID)
		} else {
			peerIDs = append(peerIDs, c.UserLowID)
		}
	}

	peers := make(map[uuid.UUID]models.User, len(peerIDs))
	if len(peerIDs) > 0 {
		var users []models.User
		if err := s.db.Preload("Profile").Where("id IN ?", peerIDs).Find(&users).Error; err != nil {
			return nil, fmt.Errorf("failed to load peers: %w", err)
		}
		for _, u := range users {
			peers[u.ID] = u
		}
	}

	responses := make([]dto.ConnectionResponse, 0, len(connections))
	for i, c := range connections {
		peer, ok := peers[peerIDs[i]]
		if !ok {
			continue
		}
		responses = append(responses, dto.ConnectionResponse{
			ID:        c.ID,
			Peer:      peerResponse(&peer),
			CreatedAt: c.CreatedAt,
		})
	}
	return responses, nil
}

// ListIncomingRequests returns the pending requests addressed to the user,
// newest first.
func (s *ConnectionService) ListIncomingRequests(userID uuid.UUID) ([]dto.ConnectionRequestResponse, error) {
	var requests []models.ConnectionRequest
	err := s.db.Preload("Sender").Preload("Sender.Profile").
		Where("receiver_id = ? AND status = ?", userID, models.RequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	responses := make([]dto.ConnectionRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp := dto.ConnectionRequestResponse{
			ID:        r.ID,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		}
		if r.Sender != nil {
			resp.Sender = peerResponse(r.Sender)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func peerResponse(u *models.User) dto.PeerResponse {
	resp := dto.PeerResponse{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
	if u.Profile != nil {
		resp.Bio = u.Profile.Bio
		resp.ProfilePic = u.Profile.ProfilePic
	}
	return resp
}
