package models

import (
	"time"
)

type Role string

const (
	RoleDeveloper        Role = "developer"
	RoleCommunityManager Role = "community_manager"
	RoleAdmin            Role = "admin"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleCommunityManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                uint64     `gorm:"primarykey" json:"id"`
	Username          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email             string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"type:varchar(255);not null" json:"-"`
	Role              Role       `gorm:"type:varchar(32);not null;default:'developer'" json:"role"`
	TempPassword      bool       `gorm:"not null;default:false" json:"temp_password"`
	ProfilePicture    string     `gorm:"type:varchar(255)" json:"profile_picture,omitempty"`
	CustomLink        *string    `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	DeveloperCode     string     `gorm:"type:varchar(32)" json:"-"`
	LastSecurityCheck *time.Time `json:"last_security_check,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Relations
	CreatedTasks  []Task `gorm:"foreignKey:CreatedBy" json:"-"`
	AssignedTasks []Task `gorm:"foreignKey:AssignedTo" json:"-"`
}
