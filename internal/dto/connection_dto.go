package dto

import (
	"time"

	"github.com/google/uuid"
)

// PeerResponse is the connection-facing summary of another user.
type PeerResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Bio        string    `json:"bio,omitempty"`
	ProfilePic string    `json:"profile_pic,omitempty"`
}

type ConnectionResponse struct {
	ID        uuid.UUID    `json:"id"`
	Peer      PeerResponse `json:"peer"`
	CreatedAt time.Time    `json:"created_at"`
}

type ConnectionRequestResponse struct {
	ID        uuid.UUID    `json:"id"`
	Sender    PeerResponse `json:"sender"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// ProfileViewResponse is the profile page payload, including the viewer's
// relationship to the profile owner.
type ProfileViewResponse struct {
	User                  UserResponse `json:"user"`
	Bio                   string       `json:"bio"`
	ProfilePic            string       `json:"profile_pic"`
	EducationLevel        string       `json:"education_level"`
	Institution           string       `json:"institution"`
	Location              string       `json:"location"`
	Website               string       `json:"website"`
	LinkedIn              string       `json:"linkedin"`
	GitHub                string       `json:"github"`
	Points                int          `json:"points"`
	Skills                []string     `json:"skills,omitempty"`
	IsConnected           bool         `json:"is_connected"`
	ConnectionRequestSent bool         `json:"connection_request_sent"`
}

type UpdateProfileRequest struct {
	Bio            *string  `json:"bio"`
	EducationLevel *string  `json:"education_level"`
	Institution    *string  `json:"institution"`
	GraduationYear *int     `json:"graduation_year"`
	Location       *string  `json:"location"`
	Website        *string  `json:"website"`
	LinkedIn       *string  `json:"linkedin"`
	GitHub         *string  `json:"github"`
	Skills         []string `json:"skills"`
}
