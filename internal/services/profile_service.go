package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/brainlink-app/brainlink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService struct {
	db          *gorm.DB
	connections *ConnectionService
}

func NewProfileService(db *gorm.DB, connections *ConnectionService) *ProfileService {
	return &ProfileService{db: db, connections: connections}
}

// View assembles the profile page payload for the named user, including the
// viewer's relationship to them (connected, or request pending).
func (s *ProfileService) View(viewerID uuid.UUID, username string) (*dto.ProfileViewResponse, error) {
	var user models.User
	err := s.db.Preload("Profile").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	resp := dto.ProfileViewResponse{
		User: dto.UserResponse{
			ID:         user.ID,
			Username:   user.Username,
			Email:      user.Email,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
	}
	if p := user.Profile; p != nil {
		resp.Bio = p.Bio
		resp.ProfilePic = p.ProfilePic
		resp.EducationLevel = p.EducationLevel
		resp.Institution = p.Institution
		resp.Location = p.Location
		resp.Website = p.Website
		resp.LinkedIn = p.LinkedIn
		resp.GitHub = p.GitHub
		resp.Points = p.Points
		if len(p.Skills) > 0 {
			var skills []string
			if err := json.Unmarshal(p.Skills, &skills); err == nil {
				resp.Skills = skills
			}
		}
	}

	if viewerID != user.ID {
		connected, err := s.connections.IsConnected(viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		resp.IsConnected = connected

		pending, err := s.connections.HasPendingRequest(viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		resp.ConnectionRequestSent = pending
	}

	return &resp, nil
}

// Update applies the non-nil fields of the request to the user's own profile.
func (s *ProfileService) Update(userID uuid.UUID, req *dto.UpdateProfileRequest) error {
	updates := map[string]interface{}{
		"last_active": time.Now().UTC(),
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.EducationLevel != nil {
		updates["education_level"] = *req.EducationLevel
	}
	if req.Institution != nil {
		updates["institution"] = *req.Institution
	}
	if req.GraduationYear != nil {
		updates["graduation_year"] = *req.GraduationYear
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.LinkedIn != nil {
		updates["linkedin"] = *req.LinkedIn
	}
	if req.GitHub != nil {
		updates["github"] = *req.GitHub
	}
	if req.Skills != nil {
		b, err := json.Marshal(req.Skills)
		if err != nil {
			return fmt.Errorf("failed to encode skills: %w", err)
		}
		updates["skills"] = datatypes.JSON(b)
	}

	result := s.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
