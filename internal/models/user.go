package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles, ordered by privilege. Elevated-access checks only ever look at
// the two super roles; the rest describe what the account is for.
const (
	RoleSuperSuper = "super_super"
	RoleSuper      = "super"
	RoleAdmin      = "admin"
	RoleMentor     = "mentor"
	RoleStudent    = "student"
	RoleRecruiter  = "recruiter"
	RoleSponsor    = "sponsor"
)

var validRoles = map[string]bool{
	RoleSuperSuper: true,
	RoleSuper:      true,
	RoleAdmin:      true,
	RoleMentor:     true,
	RoleStudent:    true,
	RoleRecruiter:  true,
	RoleSponsor:    true,
}

type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username   string         `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email      string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string         `gorm:"not null" json:"-"`
	Role       string         `gorm:"size:20;not null;default:'student'" json:"role"`
	IsVerified bool           `gorm:"default:false" json:"is_verified"`
	Phone      *string        `gorm:"size:20" json:"phone,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// ProvisionRole decides an account's role once, at creation time. Superuser
// accounts get one of the two super roles depending on whether they are also
// staff; everyone else keeps the requested role, falling back to student.
func ProvisionRole(isSuperuser, isStaff bool, requested string) string {
	if isSuperuser {
		if isStaff {
			return RoleSuperSuper
		}
		return RoleSuper
	}
	if validRoles[requested] {
		return requested
	}
	return RoleStudent
}

// IsElevated reports whether the role grants access to the system dashboard.
func (u *User) IsElevated() bool {
	return u.Role == RoleSuperSuper || u.Role == RoleSuper
}
