package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Education levels accepted on a profile.
const (
	EducationHighSchool   = "high_school"
	EducationUndergrad    = "undergrad"
	EducationMasters      = "masters"
	EducationPhD          = "phd"
	EducationProfessional = "professional"
)

// Profile is the social-facing extension of a User. It shares the user's
// primary key and is created in the same transaction as the user, so every
// user always has exactly one profile.
type Profile struct {
	UserID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Bio            string         `gorm:"type:text" json:"bio"`
	ProfilePic     string         `gorm:"type:text" json:"profile_pic"`
	EducationLevel string         `gorm:"size:20" json:"education_level"`
	Institution    string         `gorm:"size:200" json:"institution"`
	GraduationYear *int           `json:"graduation_year,omitempty"`
	Location       string         `gorm:"size:100" json:"location"`
	Website        string         `gorm:"type:text" json:"website"`
	LinkedIn       string         `gorm:"column:linkedin;type:text" json:"linkedin"`
	GitHub         string         `gorm:"column:github;type:text" json:"github"`
	Points         int            `gorm:"default:0" json:"points"`
	Skills         datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	LastActive     time.Time      `json:"last_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
